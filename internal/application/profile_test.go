package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
)

func strptr(s string) *string { return &s }

// verifiedUser builds a user that can pass the profile-update gate.
func verifiedUser(t *testing.T, username, email, password string) *entity.User {
	t.Helper()
	u := makeUser(t, username, email, password)
	u.MarkEmailVerified()
	return u
}

func TestGetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := new(mockUserRepo)
		uow := &fakeUOW{users: repo}
		uc := NewGetProfileUseCase(testLogger())

		user := makeUser(t, "alice", "alice@example.com", "Secret123")
		repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

		got, err := uc.Execute(context.Background(), uow, user.ID())
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("absent", func(t *testing.T) {
		repo := new(mockUserRepo)
		uow := &fakeUOW{users: repo}
		uc := NewGetProfileUseCase(testLogger())

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, nil)

		_, err := uc.Execute(context.Background(), uow, id)
		assert.ErrorIs(t, err, domainerr.ErrUserNotFound)
	})

	t.Run("disabled", func(t *testing.T) {
		repo := new(mockUserRepo)
		uow := &fakeUOW{users: repo}
		uc := NewGetProfileUseCase(testLogger())

		user := makeUser(t, "alice", "alice@example.com", "Secret123")
		user.Disable()
		repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

		_, err := uc.Execute(context.Background(), uow, user.ID())
		assert.ErrorIs(t, err, domainerr.ErrUserDisabled)
	})
}

func TestUpdateProfileWrongCurrentPassword(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

	_, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "WrongPass1",
		Username:        strptr("newname"),
	})

	assert.ErrorIs(t, err, domainerr.ErrInvalidCurrentPassword)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfileRequiresVerifiedEmail(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := makeUser(t, "alice", "alice@example.com", "Secret123") // unverified
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

	_, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		Username:        strptr("newname"),
	})

	assert.ErrorIs(t, err, domainerr.ErrEmailNotVerified)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfileChangeUsername(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)
	repo.On("GetByUsername", mock.Anything, "newname").Return(nil, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	got, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		Username:        strptr("newname"),
	})

	require.NoError(t, err)
	assert.Equal(t, "newname", got.Username())
	repo.AssertExpectations(t)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	taken := makeUser(t, "newname", "taken@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)
	repo.On("GetByUsername", mock.Anything, "newname").Return(taken, nil)

	_, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		Username:        strptr("newname"),
	})

	assert.ErrorIs(t, err, domainerr.ErrUsernameAlreadyExists)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfileChangeEmailResetsVerification(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	got, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		Email:           strptr("new@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email())
	assert.False(t, got.IsEmailVerified())
}

func TestUpdateProfileChangePassword(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	got, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		NewPassword:     strptr("NewSecret1"),
	})

	require.NoError(t, err)
	assert.Equal(t, "hashed:NewSecret1", got.HashedPassword())
}

func TestUpdateProfileWeakNewPassword(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

	_, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		NewPassword:     strptr("weak"),
	})

	assert.ErrorIs(t, err, domainerr.ErrInvalidPasswordFormat)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfileNoChangesSkipsPersist(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

	got, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		Username:        strptr("alice"), // same value
	})

	require.NoError(t, err)
	assert.Equal(t, user, got)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfileLosesUniqueRace(t *testing.T) {
	repo := new(mockUserRepo)
	uow := &fakeUOW{users: repo}
	uc := NewUpdateProfileUseCase(fakeHasher{}, testLogger())

	user := verifiedUser(t, "alice", "alice@example.com", "Secret123")
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	repo.On("Update", mock.Anything, user).
		Return(&repository.UniqueViolationError{Constraint: "users_email_key"})

	_, err := uc.Execute(context.Background(), uow, user.ID(), UpdateProfileDTO{
		CurrentPassword: "Secret123",
		Email:           strptr("new@example.com"),
	})

	assert.ErrorIs(t, err, domainerr.ErrEmailAlreadyExists)
}
