package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/terminal-bench/supportdesk/internal/models"
)

// PostgresSink persists audit entries to a postgres table. Row order follows
// insert order, so per-customer ordering holds as long as each request
// records its entry before returning.
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink connects to the database and ensures the audit table
// exists.
func NewPostgresSink(databaseURL string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresSink{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresSink) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_entries (
			id UUID PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL,
			category TEXT NOT NULL,
			sanitized_input TEXT NOT NULL,
			outcome TEXT NOT NULL,
			customer_id TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record implements Sink.
func (s *PostgresSink) Record(ctx context.Context, entry models.AuditEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_entries (id, timestamp, category, sanitized_input, outcome, customer_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Timestamp, entry.Category, entry.SanitizedInput,
		entry.Outcome, entry.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// CountsByCategory implements Counter.
func (s *PostgresSink) CountsByCategory(ctx context.Context) (map[models.Category]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM audit_entries GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Category]int)
	for rows.Next() {
		var category models.Category
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan audit count: %w", err)
		}
		counts[category] = count
	}
	return counts, rows.Err()
}
