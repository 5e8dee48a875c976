package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
)

// AccessUseCase flips the disabled flag on an account. Both directions share
// the load-mutate-persist shape, so they live on one type.
type AccessUseCase struct {
	Logger *logrus.Logger
}

func NewAccessUseCase(logger *logrus.Logger) *AccessUseCase {
	return &AccessUseCase{Logger: logger}
}

// Disable deactivates the account. Disabling an already-disabled account is a
// state-wise no-op.
func (uc *AccessUseCase) Disable(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*entity.User, error) {
	return uc.set(ctx, uow, id, func(u *entity.User) { u.Disable() }, "user disabled")
}

// Enable reactivates the account.
func (uc *AccessUseCase) Enable(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*entity.User, error) {
	return uc.set(ctx, uow, id, func(u *entity.User) { u.Enable() }, "user enabled")
}

func (uc *AccessUseCase) set(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID, mutate func(*entity.User), msg string) (*entity.User, error) {
	users := uow.Users()

	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.Logger.WithField("user_id", id).Warn("access change for unknown user")
		return nil, domainerr.ErrUserNotFound
	}

	mutate(user)

	if err := users.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.Logger.WithField("user_id", user.ID()).Info(msg)
	return user, nil
}
