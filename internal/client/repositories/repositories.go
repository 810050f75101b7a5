// Package repositories opens the client's local SQLite database and vends
// the durable storage and cookie store backed by it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/soulara/internal/client/migrations"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/soulara/internal/client/repositories/storage"
	"github.com/dmitrijs2005/soulara/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Storage storage.Repository
	Cookies cookies.Store
	db      *sql.DB
}

func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
// ":memory:" gives a throwaway database.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return &Repositories{
		Storage: storage.NewSQLiteRepository(db),
		Cookies: cookies.NewSQLiteStore(db),
		db:      db,
	}, nil
}

// Memory returns backends that live only as long as the process.
func Memory() *Repositories {
	return &Repositories{
		Storage: storage.NewMemoryRepository(),
		Cookies: cookies.NewMemoryStore(),
	}
}
