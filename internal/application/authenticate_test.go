package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/userkit/account-service/internal/domain/domainerr"
)

func TestAuthenticateSuccess(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewAuthenticateUseCase(fakeHasher{}, fakeIssuer{}, testLogger())

	user := makeUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	res, err := uc.Execute(context.Background(), uow, "alice", "Secret123")

	require.NoError(t, err)
	assert.Equal(t, "token-alice", res.AccessToken)
	assert.Equal(t, "bearer", res.TokenType)
	assert.False(t, res.ExpiresAt.IsZero())
	assert.Equal(t, user.ID(), res.UserID)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "alice@example.com", res.Email)
}

// An unverified email does not block login; only the disabled flag does.
func TestAuthenticateUnverifiedEmailAllowed(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewAuthenticateUseCase(fakeHasher{}, fakeIssuer{}, testLogger())

	user := makeUser(t, "alice", "alice@example.com", "Secret123")
	require.False(t, user.IsEmailVerified())
	repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	_, err := uc.Execute(context.Background(), uow, "alice", "Secret123")
	assert.NoError(t, err)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewAuthenticateUseCase(fakeHasher{}, fakeIssuer{}, testLogger())

	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, err := uc.Execute(context.Background(), uow, "ghost", "Secret123")
	assert.ErrorIs(t, err, domainerr.ErrInvalidCredentials)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewAuthenticateUseCase(fakeHasher{}, fakeIssuer{}, testLogger())

	user := makeUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	_, err := uc.Execute(context.Background(), uow, "alice", "WrongPass1")
	// Same error as for an unknown username, so responses don't reveal
	// which accounts exist.
	assert.ErrorIs(t, err, domainerr.ErrInvalidCredentials)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewAuthenticateUseCase(fakeHasher{}, fakeIssuer{}, testLogger())

	user := makeUser(t, "alice", "alice@example.com", "Secret123")
	user.Disable()
	repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	_, err := uc.Execute(context.Background(), uow, "alice", "Secret123")
	assert.ErrorIs(t, err, domainerr.ErrUserDisabled)
}

func TestAuthenticateIssuerFailure(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	issuerErr := errors.New("signing key unavailable")
	uc := NewAuthenticateUseCase(fakeHasher{}, fakeIssuer{err: issuerErr}, testLogger())

	user := makeUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	_, err := uc.Execute(context.Background(), uow, "alice", "Secret123")
	assert.ErrorIs(t, err, issuerErr)
}
