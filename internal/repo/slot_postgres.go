package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgSlotStore is the Postgres implementation of SlotStore over storage_slots.
type pgSlotStore struct {
	db db
}

// NewPostgresSlotStore constructs a SlotStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresSlotStore(db db) SlotStore {
	return &pgSlotStore{db: db}
}

func (r *pgSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM storage_slots WHERE key = @key`

	var v string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("repo.pgSlotStore.Get: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return v, true, nil
}

// Set upserts the slot; updated_at tracks the last overwrite.
func (r *pgSlotStore) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO storage_slots (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("repo.pgSlotStore.Set: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}
