package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgBindingStore is the Postgres implementation of BindingStore. It lets
// several devices share one database, each under its own key.
type pgBindingStore struct {
	db db
}

// NewPostgresBindingStore constructs a BindingStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresBindingStore(db db) BindingStore {
	return &pgBindingStore{db: db}
}

// Load retrieves the trip id bound under key.
func (s *pgBindingStore) Load(ctx context.Context, key string) (string, error) {
	const q = `
		SELECT trip_id
		FROM device_bindings
		WHERE binding_key = @key`

	var tripID string
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&tripID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.pgBindingStore.Load: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.pgBindingStore.Load: %w", err)
	}
	return tripID, nil
}

// Store upserts the binding; the last write wins.
func (s *pgBindingStore) Store(ctx context.Context, key, tripID string) error {
	const q = `
		INSERT INTO device_bindings (binding_key, trip_id, updated_at)
		VALUES (@key, @trip_id, now())
		ON CONFLICT (binding_key) DO UPDATE
		SET trip_id    = EXCLUDED.trip_id,
		    updated_at = EXCLUDED.updated_at`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.pgBindingStore.Store: %w", err)
	}
	return nil
}

// Delete removes the binding under key, if any.
func (s *pgBindingStore) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM device_bindings WHERE binding_key = @key`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.pgBindingStore.Delete: %w", err)
	}
	return nil
}
