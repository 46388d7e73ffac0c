package audit

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// SQLiteStore is an offline, append-only audit log: every envelope
// the daemon ever seals is recorded here regardless of whether
// webhook delivery succeeds, so an operator can reconstruct history
// without depending on the best-effort webhook path.
type SQLiteStore struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS audit_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	swap_id       TEXT NOT NULL,
	event_kind    TEXT NOT NULL,
	detail        TEXT NOT NULL,
	timestamp     INTEGER NOT NULL,
	payload_hash  TEXT NOT NULL,
	signature     TEXT,
	public_key    TEXT
)`

// OpenSQLiteStore opens (creating if necessary) a SQLiteStore at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append records env in the audit log. It never returns a caller
// obligation to retry: audit logging failures are reported by the
// caller's own logger, not propagated into the state machine.
func (s *SQLiteStore) Append(env Envelope) error {
	wire := toWireFormat(env)
	_, err := s.db.Exec(
		`INSERT INTO audit_log (swap_id, event_kind, detail, timestamp, payload_hash, signature, public_key)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		wire.SwapID, wire.EventKind, wire.Detail, wire.TimestampUnix,
		wire.PayloadHash, nullableString(wire.Signature), nullableString(wire.PublicKey),
	)
	return err
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Count returns the number of audit log entries recorded for swapID,
// used by tests and operator tooling to sanity-check delivery.
func (s *SQLiteStore) Count(swapID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM audit_log WHERE swap_id = ?`, swapID).Scan(&n)
	return n, err
}
