package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/valueobject"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("alice", "alice@example.com")
	require.NoError(t, err)
	return u
}

func TestNewUserDefaults(t *testing.T) {
	u := newTestUser(t)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "alice", u.Username())
	assert.Equal(t, "alice@example.com", u.Email())
	assert.True(t, u.IsEnabled())
	assert.False(t, u.Disabled())
	assert.False(t, u.IsEmailVerified())
	assert.Empty(t, u.HashedPassword())
	assert.Equal(t, u.CreatedAt(), u.UpdatedAt())
	assert.Equal(t, time.UTC, u.CreatedAt().Location())
}

func TestNewUserInvalidIdentity(t *testing.T) {
	_, err := NewUser("ab", "a@b.com")
	assert.ErrorIs(t, err, domainerr.ErrInvalidUsernameFormat)

	_, err = NewUser("alice", "no-at-sign")
	assert.ErrorIs(t, err, domainerr.ErrInvalidEmailFormat)
}

func TestSetPassword(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.SetPassword("hashed-value"))
	assert.Equal(t, "hashed-value", u.HashedPassword())
	assert.False(t, u.UpdatedAt().Before(u.CreatedAt()))

	err := u.SetPassword("")
	assert.ErrorIs(t, err, ErrEmptyPasswordHash)
	assert.Equal(t, "hashed-value", u.HashedPassword())
}

func TestChangeUsername(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.ChangeUsername("bob42"))
	assert.Equal(t, "bob42", u.Username())
	assert.Equal(t, "alice@example.com", u.Email())

	err := u.ChangeUsername("ab")
	assert.ErrorIs(t, err, domainerr.ErrInvalidUsernameFormat)
	assert.Equal(t, "bob42", u.Username(), "failed change must not alter state")
}

func TestChangeEmailResetsVerification(t *testing.T) {
	u := newTestUser(t)
	u.MarkEmailVerified()
	require.True(t, u.IsEmailVerified())

	require.NoError(t, u.ChangeEmail("new@example.com"))
	assert.Equal(t, "new@example.com", u.Email())
	assert.False(t, u.IsEmailVerified(), "verification does not survive an email change")

	err := u.ChangeEmail("broken")
	assert.ErrorIs(t, err, domainerr.ErrInvalidEmailFormat)
	assert.Equal(t, "new@example.com", u.Email())
}

func TestEnableDisable(t *testing.T) {
	u := newTestUser(t)

	u.Disable()
	assert.True(t, u.Disabled())
	assert.False(t, u.IsEnabled())

	// disabling twice stays disabled
	u.Disable()
	assert.True(t, u.Disabled())

	u.Enable()
	assert.True(t, u.IsEnabled())
}

func TestRehydrate(t *testing.T) {
	id := uuid.New()
	identity, err := valueobject.NewIdentity("carol", "carol@example.com")
	require.NoError(t, err)
	security := valueobject.RehydrateSecurity("hash", true, true)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	u := Rehydrate(id, identity, security, created, updated)

	assert.Equal(t, id, u.ID())
	assert.Equal(t, "carol", u.Username())
	assert.Equal(t, "hash", u.HashedPassword())
	assert.True(t, u.Disabled())
	assert.True(t, u.IsEmailVerified())
	assert.Equal(t, created, u.CreatedAt())
	assert.Equal(t, updated, u.UpdatedAt())
}
