package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS operations (
	seq        INTEGER PRIMARY KEY,
	operation  TEXT NOT NULL,
	applied_at TIMESTAMP NOT NULL
);`

// SQLiteJournal is the file-backed default journal.
type SQLiteJournal struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the journal database at dsn.
func OpenSQLite(dsn string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite journal: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &SQLiteJournal{db: db}, nil
}

// Append implements Journal.
func (j *SQLiteJournal) Append(ctx context.Context, rec Record) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO operations (seq, operation, applied_at) VALUES (?, ?, ?)`,
		rec.Seq, rec.Operation, rec.AppliedAt)
	return err
}

// Recent implements Journal.
func (j *SQLiteJournal) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, operation, applied_at FROM operations ORDER BY seq DESC LIMIT ?`, limit)
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
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
