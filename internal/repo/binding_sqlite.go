package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pkordes/planner/internal/domain"
)

// sqliteBindingStore is the device-local BindingStore. It expects a *sql.DB
// opened with the modernc.org/sqlite driver and the device_bindings
// migration applied.
type sqliteBindingStore struct {
	db *sql.DB
}

// NewSQLiteBindingStore constructs a BindingStore over an open SQLite database.
func NewSQLiteBindingStore(db *sql.DB) BindingStore {
	return &sqliteBindingStore{db: db}
}

func (s *sqliteBindingStore) Load(ctx context.Context, key string) (string, error) {
	const q = `SELECT trip_id FROM device_bindings WHERE binding_key = ?`

	var tripID string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("repo.sqliteBindingStore.Load: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.sqliteBindingStore.Load: %w", err)
	}
	return tripID, nil
}

func (s *sqliteBindingStore) Store(ctx context.Context, key, tripID string) error {
	const q = `
		INSERT INTO device_bindings (binding_key, trip_id, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (binding_key) DO UPDATE
		SET trip_id    = excluded.trip_id,
		    updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, q, key, tripID); err != nil {
		return fmt.Errorf("repo.sqliteBindingStore.Store: %w", err)
	}
	return nil
}

func (s *sqliteBindingStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM device_bindings WHERE binding_key = ?`, key); err != nil {
		return fmt.Errorf("repo.sqliteBindingStore.Delete: %w", err)
	}
	return nil
}
