package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
	"github.com/userkit/account-service/internal/domain/valueobject"
)

type GetProfileUseCase struct {
	Logger *logrus.Logger
}

func NewGetProfileUseCase(logger *logrus.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{Logger: logger}
}

// Execute loads a user by id. Read-only; a disabled account is reported as
// such rather than returned.
func (uc *GetProfileUseCase) Execute(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*entity.User, error) {
	user, err := uow.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.Logger.WithField("user_id", id).Warn("profile requested for unknown user")
		return nil, domainerr.ErrUserNotFound
	}
	if user.Disabled() {
		return nil, domainerr.ErrUserDisabled
	}
	return user, nil
}

// UpdateProfileDTO carries a partial profile update. Nil pointer fields are
// left untouched; CurrentPassword is always required to confirm the change.
type UpdateProfileDTO struct {
	CurrentPassword string
	Username        *string
	Email           *string
	NewPassword     *string
}

type UpdateProfileUseCase struct {
	Hasher PasswordHasher
	Logger *logrus.Logger
}

func NewUpdateProfileUseCase(hasher PasswordHasher, logger *logrus.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{Hasher: hasher, Logger: logger}
}

// Execute applies the supplied fields to the user's profile after confirming
// the current password. A changed email resets verification through the
// entity. Only persists when something actually changed.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID, dto UpdateProfileDTO) (*entity.User, error) {
	users := uow.Users()

	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerr.ErrUserNotFound
	}

	if !uc.Hasher.Verify(user.HashedPassword(), dto.CurrentPassword) {
		uc.Logger.WithField("user_id", id).Warn("profile update with wrong current password")
		return nil, domainerr.ErrInvalidCurrentPassword
	}

	if !user.IsEmailVerified() {
		return nil, domainerr.ErrEmailNotVerified
	}

	changed := false

	if dto.Username != nil && *dto.Username != user.Username() {
		taken, err := users.GetByUsername(ctx, *dto.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, domainerr.ErrUsernameAlreadyExists
		}
		if err := user.ChangeUsername(*dto.Username); err != nil {
			return nil, err
		}
		changed = true
	}

	if dto.Email != nil && *dto.Email != user.Email() {
		taken, err := users.GetByEmail(ctx, *dto.Email)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, domainerr.ErrEmailAlreadyExists
		}
		if err := user.ChangeEmail(*dto.Email); err != nil {
			return nil, err
		}
		changed = true
	}

	if dto.NewPassword != nil {
		password, err := valueobject.NewPassword(*dto.NewPassword)
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
		changed = true
	}

	if changed {
		if err := users.Update(ctx, user); err != nil {
			return nil, mapUniqueViolation(err)
		}
		uc.Logger.WithField("user_id", user.ID()).Info("profile updated")
	}

	return user, nil
}
