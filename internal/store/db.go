package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Options configures the store explicitly; there is no global state.
type Options struct {
	Path   string
	Schema []string // DDL statements; DefaultSchema() when nil
	Log    zerolog.Logger
}

// Store persists receipts, transactions and reference data in SQLite.
type Store struct {
	conn *sql.DB
	path string
	log  zerolog.Logger
}

// querier is satisfied by both *sql.DB and *sql.Tx, so existence checks
// and inserts run identically inside and outside a batch transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Open opens (creating if needed) the SQLite ledger and ensures the
// schema exists.
func Open(opts Options) (*Store, error) {
	dir := filepath.Dir(opts.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", opts.Path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		opts.Log.Error().Err(err).Str("path", opts.Path).Msg("Database unreachable")
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Single-writer model: one connection serializes all writes.
	conn.SetMaxOpenConns(1)

	schema := opts.Schema
	if schema == nil {
		schema = DefaultSchema()
	}
	for _, ddl := range schema {
		if _, err := conn.Exec(ddl); err != nil {
			conn.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Store{
		conn: conn,
		path: opts.Path,
		log:  opts.Log.With().Str("component", "store").Logger(),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
