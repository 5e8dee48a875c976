package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/userkit/account-service/internal/domain/entity"
)

// UserRepository is the persistence contract for the User aggregate. All calls
// run inside the transaction owned by the caller's UnitOfWork; the repository
// never commits or rolls back.
//
// Contract:
//   - GetBy* return (nil, nil) when no user matches; absence is not an error.
//   - Create returns a *UniqueViolationError when a unique constraint fires.
//   - Update returns domainerr.ErrUserNotFound when the row no longer exists.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
}

// UniqueViolationError is the storage-level uniqueness rejection surfaced to
// the application layer so it can be mapped to a domain conflict error. The
// constraint name identifies which uniqueness rule fired.
type UniqueViolationError struct {
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *UniqueViolationError) Unwrap() error { return e.Err }

// AsUniqueViolation extracts a *UniqueViolationError from err's chain, or nil.
func AsUniqueViolation(err error) *UniqueViolationError {
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return uv
	}
	return nil
}
