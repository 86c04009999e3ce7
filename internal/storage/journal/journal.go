// Package journal records every committed operation in a relational
// database, giving operators an audit trail independent of the snapshot
// store. SQLite is the default backend; postgres is available for shared
// deployments.
package journal

import (
	"context"
	"fmt"
	"time"
)

// Record is one committed operation.
type Record struct {
	Seq       uint64
	Operation string
	AppliedAt time.Time
}

// Journal appends and reads operation records.
type Journal interface {
	// Append stores one record.
	Append(ctx context.Context, rec Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close releases the underlying database.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Open opens the named journal backend with the given DSN.
func Open(backend, dsn string) (Journal, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLite(dsn)
	case BackendPostgres:
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("unknown journal backend %q", backend)
	}
}
