package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the minimal query surface the repositories need. It is satisfied by
// *pgxpool.Pool, pgx.Tx, and the pgxmock pool/tx used in tests, so the same
// repository code runs pooled, transactional, or mocked.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner starts transactions. *pgxpool.Pool and pgxmock implement it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
