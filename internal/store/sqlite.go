package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pizzetta/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ StatusLogStore = (*SQLiteStore)(nil)

const statusLogSchema = `
CREATE TABLE IF NOT EXISTS status_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id    TEXT NOT NULL,
	from_status TEXT NOT NULL,
	to_status   TEXT NOT NULL,
	changed_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_status_log_order ON status_log(order_id);
`

// SQLiteStore records order status history in a SQLite database. The log is
// append-only audit data: deleting an order from the order book keeps its
// history rows.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the status_log table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(statusLogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating status_log table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Append records one status change.
func (s *SQLiteStore) Append(ctx context.Context, change domain.StatusChange) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO status_log (order_id, from_status, to_status, changed_at)
		 VALUES (?, ?, ?, ?)`,
		change.OrderID,
		string(change.From),
		string(change.To),
		change.ChangedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("appending status change: %w", err)
	}
	return nil
}

// History returns the recorded changes for an order, oldest first.
func (s *SQLiteStore) History(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_status, to_status, changed_at
		 FROM status_log WHERE order_id = ? ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying status history: %w", err)
	}
	defer rows.Close()

	var changes []domain.StatusChange
	for rows.Next() {
		var from, to, at string
		if err := rows.Scan(&from, &to, &at); err != nil {
			return nil, fmt.Errorf("scanning status change: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing change timestamp: %w", err)
		}
		changes = append(changes, domain.StatusChange{
			OrderID:   orderID,
			From:      domain.Status(from),
			To:        domain.Status(to),
			ChangedAt: ts,
		})
	}
	return changes, rows.Err()
}
