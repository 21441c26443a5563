// Package store implements service.Store on PostgreSQL and SQLite.
package store

import (
	"context"
	"fmt"
	"strings"

	"tareas/internal/service"
)

// TableName is the single table holding tasks.
const TableName = "tareas"

// Open connects to the store named by dsn and ensures the schema exists.
//
// Supported forms:
//   - postgres://... or postgresql://...  (PostgreSQL via pgx)
//   - sqlite://<path>, file:<path> or :memory:  (SQLite)
func Open(ctx context.Context, dsn string) (service.Store, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgres(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return NewSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return NewSQLite(ctx, dsn)
	case dsn == "":
		return nil, fmt.Errorf("database url is empty")
	default:
		return nil, fmt.Errorf("unsupported database url: %s", Redact(dsn))
	}
}

// Redact drops anything that looks like credentials from a dsn before it is printed.
func Redact(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***" + rest[at:]
	}
	return scheme + "://" + rest
}
