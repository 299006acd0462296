package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/articles"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			t.Fatalf("unexpected driver %q", driver)
		}
		return db, err
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	_, ok := m.Users(db).(*users.PostgresRepository)
	assert.True(t, ok)
	_, ok = m.Articles(db).(*articles.PostgresRepository)
	assert.True(t, ok)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	})

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpen_EmptyDSNUsesMemory(t *testing.T) {
	m, db, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, db)
	_, ok := m.(*MemoryRepositoryManager)
	assert.True(t, ok)
}

func TestOpen_Postgres(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectPing()
	stubOpen(t, db, nil)

	migrated := false
	stubGoose(t, func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		migrated = got == db
		return nil
	})

	m, got, err := Open(context.Background(), "postgres://localhost/news")
	require.NoError(t, err)
	defer got.Close()

	assert.Same(t, db, got)
	assert.True(t, migrated)
	_, ok := m.(*PostgresRepositoryManager)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_Errors(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		stubOpen(t, nil, errors.New("bad dsn"))
		_, _, err := Open(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open database: bad dsn")
	})

	t.Run("ping", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectPing().WillReturnError(errors.New("refused"))
		stubOpen(t, db, nil)

		_, _, err := Open(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ping database: refused")
	})

	t.Run("migrate", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectPing()
		stubOpen(t, db, nil)
		stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return errors.New("bad sql")
		})

		_, _, err := Open(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migrate database: bad sql")
	})
}
