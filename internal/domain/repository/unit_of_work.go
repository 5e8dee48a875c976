package repository

import "context"

// UnitOfWork binds the repositories to a single transactional session for the
// duration of one logical operation. Use cases reach their repositories only
// through it; they never commit or roll back themselves. The transaction
// boundary belongs to whoever entered the scope.
type UnitOfWork interface {
	// Users returns the user repository bound to this unit's transaction.
	Users() UserRepository

	// Commit and Rollback are independently invocable for explicit
	// checkpointing, but the default path is the implicit
	// commit-on-success / rollback-on-error handled by TxManager.Do.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager owns the scoped-acquisition lifecycle of a UnitOfWork: Do begins a
// transaction, hands the unit to fn, commits when fn returns nil and rolls
// back when it returns an error (or panics). The underlying session is
// released exactly once on every exit path. A commit failure propagates to the
// caller as a persistence error.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
