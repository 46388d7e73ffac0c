package swapdriver

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStore persists swap state in a Postgres `swaps` table,
// suitable for a swapd deployment with multiple driver processes
// sharing state behind a single database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn. Callers should run
// MigratePostgres against the same dsn before first use.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Put implements Store via an upsert on swap_id.
func (s *PostgresStore) Put(state State) error {
	payload, err := encodeState(state)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO swaps (swap_id, kind, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (swap_id) DO UPDATE
		SET kind = EXCLUDED.kind, payload = EXCLUDED.payload, updated_at = now()
	`
	_, err = s.pool.Exec(context.Background(), query, state.SwapID(), int16(state.Kind), payload)
	return err
}

// IsRetryableConflict reports whether err is a Postgres serialization
// failure that a caller should retry the write for, as opposed to a
// permanent failure.
func IsRetryableConflict(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgerrcode.SerializationFailure
}

// Get implements Store.
func (s *PostgresStore) Get(swapID string) (State, error) {
	const query = `SELECT payload FROM swaps WHERE swap_id = $1`

	var payload []byte
	err := s.pool.QueryRow(context.Background(), query, swapID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return State{}, ErrSwapNotFound
		}
		return State{}, err
	}
	return decodeState(payload)
}

// Delete implements Store.
func (s *PostgresStore) Delete(swapID string) error {
	const query = `DELETE FROM swaps WHERE swap_id = $1`
	_, err := s.pool.Exec(context.Background(), query, swapID)
	return err
}

func asPgError(err error) (*pgconn.PgError, bool) {
	pgErr, ok := err.(*pgconn.PgError)
	return pgErr, ok
}
