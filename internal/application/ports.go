package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/repository"
)

// PasswordHasher is the hashing collaborator. The hash format is opaque to
// the use cases.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hashed, plain string) bool
}

// TokenIssuer mints an access token for an authenticated user. Only the
// Authenticate use case needs it; the token is opaque to this layer.
type TokenIssuer interface {
	Issue(userID uuid.UUID, username, email string) (token string, expiresAt time.Time, err error)
}

// Names of the unique constraints on the users table. Register and
// UpdateProfile use them to decide which conflict a storage-level uniqueness
// violation maps to.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// mapUniqueViolation translates a storage uniqueness rejection into the
// matching domain conflict. Violations of constraints this layer doesn't know
// about, and every other error, pass through unmapped.
func mapUniqueViolation(err error) error {
	uv := repository.AsUniqueViolation(err)
	if uv == nil {
		return err
	}
	switch uv.Constraint {
	case usernameConstraint:
		return domainerr.ErrUsernameAlreadyExists
	case emailConstraint:
		return domainerr.ErrEmailAlreadyExists
	}
	return err
}
