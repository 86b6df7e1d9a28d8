package redis

import (
	"context"
	stderrors "errors"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const colorNamePrefix = "colorname:"

type colorNameCache struct {
	client *goredis.Client
	logger *zap.Logger
}

// NewColorNameCache creates a Redis color-name cache. Entries never expire.
func NewColorNameCache(client *goredis.Client, logger *zap.Logger) *colorNameCache {
	return &colorNameCache{client: client, logger: logger}
}

func (c *colorNameCache) Get(ctx context.Context, hex string) (string, bool, error) {
	name, err := c.client.Get(ctx, colorNamePrefix+strings.ToUpper(hex)).Result()
	if stderrors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		c.logger.Warn("Failed to read color name cache", zap.String("hex", hex), zap.Error(err))
		return "", false, err
	}
	return name, true, nil
}

func (c *colorNameCache) Set(ctx context.Context, hex, name string) error {
	return c.client.Set(ctx, colorNamePrefix+strings.ToUpper(hex), name, 0).Err()
}
