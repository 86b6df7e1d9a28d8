package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/repository"
)

// NewRepositories creates Redis-backed repositories
func NewRepositories(client *goredis.Client, idempotencyTTL time.Duration, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		IdempotencyKey: NewIdempotencyKeyRepository(client, idempotencyTTL, logger),
		ColorNames:     NewColorNameCache(client, logger),
	}
}
