package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS operations (
	seq        BIGINT PRIMARY KEY,
	operation  TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL
);`

// PostgresJournal is the postgres-backed journal for shared deployments.
type PostgresJournal struct {
	db *sql.DB
}

// OpenPostgres connects to the journal database at dsn.
func OpenPostgres(dsn string) (*PostgresJournal, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres journal: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &PostgresJournal{db: db}, nil
}

// Append implements Journal.
func (j *PostgresJournal) Append(ctx context.Context, rec Record) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO operations (seq, operation, applied_at) VALUES ($1, $2, $3)`,
		rec.Seq, rec.Operation, rec.AppliedAt)
	return err
}

// Recent implements Journal.
func (j *PostgresJournal) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, operation, applied_at FROM operations ORDER BY seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Seq, &rec.Operation, &rec.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close implements Journal.
func (j *PostgresJournal) Close() error {
	return j.db.Close()
}
