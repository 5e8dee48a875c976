package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/userkit/account-service/internal/domain/valueobject"
)

// ErrEmptyPasswordHash is returned when an empty hash is handed to SetPassword.
var ErrEmptyPasswordHash = errors.New("password hash cannot be empty")

// User is the aggregate root of the account domain. All state changes go
// through its methods; the id and creation timestamp never change after
// construction, and every mutation refreshes the update timestamp. Value
// objects are replaced wholesale, never mutated in place.
type User struct {
	id        uuid.UUID
	identity  valueobject.Identity
	security  valueobject.Security
	createdAt time.Time
	updatedAt time.Time
}

// NewUser is the only constructor path for brand-new users. The identity is
// validated through its value object; the security state starts at its
// defaults (enabled, unverified, no password yet).
func NewUser(username, email string) (*User, error) {
	identity, err := valueobject.NewIdentity(username, email)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		identity:  identity,
		security:  valueobject.NewSecurity(),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Rehydrate reconstructs a persisted user. Repository use only.
func Rehydrate(id uuid.UUID, identity valueobject.Identity, security valueobject.Security, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		identity:  identity,
		security:  security,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID           { return u.id }
func (u *User) Username() string        { return u.identity.Username() }
func (u *User) Email() string           { return u.identity.Email() }
func (u *User) HashedPassword() string  { return u.security.HashedPassword() }
func (u *User) Disabled() bool          { return u.security.Disabled() }
func (u *User) IsEnabled() bool         { return !u.security.Disabled() }
func (u *User) IsEmailVerified() bool   { return u.security.EmailVerified() }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

// SetPassword attaches an already-hashed password. Complexity validation
// happens on the plaintext before hashing, never here.
func (u *User) SetPassword(hash string) error {
	if hash == "" {
		return ErrEmptyPasswordHash
	}
	u.security = u.security.WithHashedPassword(hash)
	u.touch()
	return nil
}

// ChangeUsername rebuilds the identity with the new username, re-running
// validation.
func (u *User) ChangeUsername(username string) error {
	identity, err := valueobject.NewIdentity(username, u.Email())
	if err != nil {
		return err
	}
	u.identity = identity
	u.touch()
	return nil
}

// ChangeEmail rebuilds the identity with the new email and resets email
// verification, since the new address has not been confirmed.
func (u *User) ChangeEmail(email string) error {
	identity, err := valueobject.NewIdentity(u.Username(), email)
	if err != nil {
		return err
	}
	u.identity = identity
	u.security = u.security.WithEmailVerified(false)
	u.touch()
	return nil
}

// Enable reactivates the account.
func (u *User) Enable() {
	u.security = u.security.WithDisabled(false)
	u.touch()
}

// Disable deactivates the account. Idempotent.
func (u *User) Disable() {
	u.security = u.security.WithDisabled(true)
	u.touch()
}

// MarkEmailVerified records a completed email verification.
func (u *User) MarkEmailVerified() {
	u.security = u.security.WithEmailVerified(true)
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}
