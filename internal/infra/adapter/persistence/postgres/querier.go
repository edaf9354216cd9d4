package postgres

import (
	"context"
	"database/sql"
)

// Querier is the slice of database/sql the repositories need. *sql.DB
// satisfies it directly; the circuit breaker wrapper satisfies it too, so
// callers choose whether repository traffic trips a breaker.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
