package memory

import (
	"context"
	"sync"
	"time"

	"github.com/decalcomanie/colorstore/internal/domain"
	"github.com/decalcomanie/colorstore/pkg/errors"
)

type IdempotencyKeyRepository struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	keys map[string]domain.IdempotencyKey
}

// NewIdempotencyKeyRepository creates a map-backed store; ttl <= 0 keeps keys forever
func NewIdempotencyKeyRepository(ttl time.Duration) *IdempotencyKeyRepository {
	return &IdempotencyKeyRepository{
		ttl:  ttl,
		now:  time.Now,
		keys: make(map[string]domain.IdempotencyKey),
	}
}

func (r *IdempotencyKeyRepository) GetByKey(_ context.Context, key string) (*domain.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.keys[key]
	if !ok {
		return nil, nil
	}
	if r.expired(k) {
		delete(r.keys, key)
		return nil, nil
	}
	return &k, nil
}

func (r *IdempotencyKeyRepository) Create(_ context.Context, key *domain.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.keys[key.Key]; ok && !r.expired(existing) {
		return &errors.ErrConflict{Message: "idempotency key already used"}
	}
	r.sweep()
	if key.CreatedAt.IsZero() {
		key.CreatedAt = r.now()
	}
	r.keys[key.Key] = *key
	return nil
}

// sweep drops every expired key; callers hold mu
func (r *IdempotencyKeyRepository) sweep() {
	for k, v := range r.keys {
		if r.expired(v) {
			delete(r.keys, k)
		}
	}
}

func (r *IdempotencyKeyRepository) expired(k domain.IdempotencyKey) bool {
	return r.ttl > 0 && r.now().Sub(k.CreatedAt) > r.ttl
}
