package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

const idempotencyPrefix = "idempotency:"

type idempotencyKeyRepository struct {
	client *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewIdempotencyKeyRepository creates a new idempotency key repository
func NewIdempotencyKeyRepository(client *goredis.Client, ttl time.Duration, logger *zap.Logger) *idempotencyKeyRepository {
	return &idempotencyKeyRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *idempotencyKeyRepository) GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error) {
	raw, err := r.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if stderrors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get idempotency key", zap.Error(err))
		return nil, err
	}

	var idempotencyKey domain.IdempotencyKey
	if err := json.Unmarshal(raw, &idempotencyKey); err != nil {
		r.logger.Error("Corrupt idempotency key entry", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &idempotencyKey, nil
}

func (r *idempotencyKeyRepository) Create(ctx context.Context, key *domain.IdempotencyKey) error {
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, idempotencyPrefix+key.Key, raw, r.ttl).Result()
	if err != nil {
		r.logger.Error("Failed to create idempotency key", zap.Error(err))
		return err
	}
	if !ok {
		return &errors.ErrConflict{Message: "idempotency key already used"}
	}
	return nil
}
