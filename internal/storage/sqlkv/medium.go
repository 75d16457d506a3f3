// Package sqlkv provides a key-value medium backed by a single MySQL table.
//
// Each key is one row. Write is an upsert inside a transaction, so the
// stored document is either the previous one or the new one.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dbsmedya/planbrowser/internal/logger"
	"github.com/dbsmedya/planbrowser/internal/sqlutil"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "planbrowser_kv"

// Medium reads and writes documents in a MySQL table.
type Medium struct {
	db    *sql.DB
	table string
	log   *logger.Logger
}

// New returns a Medium over db using table. The table name must be a plain
// identifier.
func New(db *sql.DB, table string, log *logger.Logger) (*Medium, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	if table == "" {
		table = DefaultTable
	}
	quoted, err := sqlutil.QuoteIdentifierSafe(table)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Medium{db: db, table: quoted, log: log.WithBackend("mysql")}, nil
}

// EnsureSchema creates the key-value table if it does not exist.
func (m *Medium) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  k VARCHAR(191) NOT NULL PRIMARY KEY,
  v LONGTEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, m.table)

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", m.table, err)
	}
	return nil
}

// Read returns the document under key.
func (m *Medium) Read(ctx context.Context, key string) ([]byte, bool, error) {
	query := fmt.Sprintf("SELECT v FROM %s WHERE k = ?", m.table)

	var value []byte
	err := m.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Write replaces the document under key.
func (m *Medium) Write(ctx context.Context, key string, data []byte) error {
	query := fmt.Sprintf("INSERT INTO %s (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)", m.table)

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, key, data); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.log.Warnw("Rollback failed", "key", key, "error", rbErr)
		}
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit key %q: %w", key, err)
	}
	m.log.Debugw("Wrote document", "key", key, "bytes", len(data))
	return nil
}
