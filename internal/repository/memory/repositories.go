// Package memory keeps repositories in process, for single-instance deployments
// and tests.
package memory

import (
	"time"

	"github.com/decalcomanie/colorstore/internal/repository"
)

// NewRepositories creates in-process repositories
func NewRepositories(idempotencyTTL time.Duration) *repository.Repositories {
	return &repository.Repositories{
		IdempotencyKey: NewIdempotencyKeyRepository(idempotencyTTL),
		ColorNames:     NewColorNameCache(),
	}
}
