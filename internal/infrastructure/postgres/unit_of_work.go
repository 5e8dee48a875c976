package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/repository"
)

// unitOfWork binds the repositories to one pgx transaction. Repositories are
// built lazily on first access, all sharing the same transaction.
type unitOfWork struct {
	tx       pgx.Tx
	users    repository.UserRepository
	finished bool
}

func (u *unitOfWork) Users() repository.UserRepository {
	if u.users == nil {
		u.users = NewUserRepository(u.tx)
	}
	return u.users
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	u.finished = true
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	u.finished = true
	return u.tx.Rollback(ctx)
}

// TxManager implements repository.TxManager on a pgx connection pool.
type TxManager struct {
	pool   TxBeginner
	logger *logrus.Logger
}

func NewTxManager(pool TxBeginner, logger *logrus.Logger) *TxManager {
	return &TxManager{pool: pool, logger: logger}
}

// Do runs fn inside one transaction-scoped UnitOfWork. On a nil return the
// transaction commits; on an error (or panic) it rolls back; either way the
// underlying session is released exactly once. Business errors pass through
// untouched; unclassified errors are logged before propagating.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// Rollback must still reach the server when the caller's context is
	// already canceled, so exit paths run it on a detached context.
	rbCtx := context.WithoutCancel(ctx)

	uow := &unitOfWork{tx: tx}
	defer func() {
		// Release guard for panics and early returns. Rollback after an
		// explicit commit/rollback would be a double release, hence the flag.
		if !uow.finished {
			_ = uow.Rollback(rbCtx)
		}
	}()

	if err := fn(ctx, uow); err != nil {
		if !uow.finished {
			if rbErr := uow.Rollback(rbCtx); rbErr != nil {
				m.logger.WithError(rbErr).Error("transaction rollback failed")
			}
		}
		if !domainerr.IsDomain(err) {
			m.logger.WithError(err).Error("unexpected error inside transaction")
		}
		return err
	}

	if uow.finished {
		// fn checkpointed explicitly; nothing left to do.
		return nil
	}
	if err := uow.Commit(ctx); err != nil {
		m.logger.WithError(err).Error("transaction commit failed")
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

var _ repository.TxManager = (*TxManager)(nil)
