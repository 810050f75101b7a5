package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/soulara/internal/server/repositories/users"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNew_EmptyDSNIsInMemory(t *testing.T) {
	m, err := New(context.Background(), "")
	require.NoError(t, err)
	require.IsType(t, &InMemoryRepositoryManager{}, m)

	assert.NoError(t, m.RunMigrations(context.Background()))
	assert.IsType(t, &users.MemoryRepository{}, m.Users())
	assert.NoError(t, m.Close())
}

func TestNew_UnreachablePostgres(t *testing.T) {
	_, err := New(context.Background(), "postgres://soulara@127.0.0.1:1/soulara?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
}

func TestPostgresManager_Users(t *testing.T) {
	db, mock := newDB(t)
	m := newPostgresRepositoryManager(db)

	assert.IsType(t, &users.PostgresRepository{}, m.Users())

	mock.ExpectClose()
	require.NoError(t, m.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := newPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := newPostgresRepositoryManager(db)
	require.EqualError(t, m.RunMigrations(context.Background()), "boom")
}
