package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authflow/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authflow/internal/dbx"
)

// SQLiteStore persists the session in the local database's metadata table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already migrated database (see storage.Open).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLiteStore) get(ctx context.Context, key string) (metadata.Entry, error) {
	e, err := s.repo(s.db).Get(ctx, key)
	if errors.Is(err, metadata.ErrNotFound) {
		return e, fmt.Errorf("session[%s]: %w", key, ErrNotFound)
	}
	return e, err
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	e, err := s.get(ctx, key)
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

// UpdatedAt reports when key was last written.
func (s *SQLiteStore) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	e, err := s.get(ctx, key)
	if err != nil {
		return time.Time{}, err
	}
	return e.UpdatedAt, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return s.repo(s.db).Put(ctx, map[string]string{key: value})
}

func (s *SQLiteStore) SetMany(ctx context.Context, values map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Put(ctx, values)
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.repo(s.db).Remove(ctx, key)
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo(s.db).Truncate(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
