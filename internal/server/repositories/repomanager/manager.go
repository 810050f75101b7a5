// Package repomanager opens the Auth API's storage: PostgreSQL when a DSN
// is configured, process memory otherwise.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/soulara/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close() error
}

// New returns the in-memory manager for an empty dsn and the PostgreSQL one,
// migrated, otherwise.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewInMemoryRepositoryManager(), nil
	}
	return NewPostgresRepositoryManager(ctx, dsn)
}
