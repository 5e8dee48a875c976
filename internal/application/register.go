package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
	"github.com/userkit/account-service/internal/domain/valueobject"
)

// RegisterUserDTO is the immutable input record for registration.
type RegisterUserDTO struct {
	Username string
	Email    string
	Password string
}

type RegisterUseCase struct {
	Hasher PasswordHasher
	Logger *logrus.Logger
}

func NewRegisterUseCase(hasher PasswordHasher, logger *logrus.Logger) *RegisterUseCase {
	return &RegisterUseCase{Hasher: hasher, Logger: logger}
}

// Execute creates a new user inside the caller's unit of work.
//
// Race strategy (hybrid): the username/email lookups are advisory pre-checks
// that give an instant error for the common case; the real guard is the
// unique constraint in the database, whose violation is mapped back to the
// matching domain conflict. No retry; the conflict is reported, once.
func (uc *RegisterUseCase) Execute(ctx context.Context, uow repository.UnitOfWork, dto RegisterUserDTO) (*entity.User, error) {
	users := uow.Users()

	existing, err := users.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainerr.ErrUsernameAlreadyExists
	}

	existing, err = users.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainerr.ErrEmailAlreadyExists
	}

	// Password complexity is checked on the plaintext, before any hashing
	// or persistence.
	password, err := valueobject.NewPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(dto.Username, dto.Email)
	if err != nil {
		return nil, err
	}

	hash, err := uc.Hasher.Hash(password.String())
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(hash); err != nil {
		return nil, err
	}

	if err := users.Create(ctx, user); err != nil {
		// The pre-checks can't close the check-then-act race; the
		// constraint violation arriving here is the losing side of it.
		return nil, mapUniqueViolation(err)
	}

	uc.Logger.WithFields(logrus.Fields{
		"user_id":  user.ID(),
		"username": user.Username(),
	}).Info("user registered")

	return user, nil
}
