package repository

import (
	"context"

	"github.com/decalcomanie/colorstore/internal/domain"
)

// IdempotencyKeyRepository stores which PayPal order a client Idempotency-Key produced
type IdempotencyKeyRepository interface {
	// GetByKey returns (nil, nil) when the key is unknown or expired
	GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error)
	// Create fails with *errors.ErrConflict when the key already exists
	Create(ctx context.Context, key *domain.IdempotencyKey) error
}

// ColorNameCache remembers color-API answers; a hex code always has the same name
type ColorNameCache interface {
	Get(ctx context.Context, hex string) (name string, ok bool, err error)
	Set(ctx context.Context, hex, name string) error
}

// Repositories aggregates all repositories
type Repositories struct {
	IdempotencyKey IdempotencyKeyRepository
	ColorNames     ColorNameCache
}
