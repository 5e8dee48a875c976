package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
)

// VerifyEmailUseCase marks a user's email as verified. Token issuance and
// redemption live at the interface layer; by the time this runs the token has
// already been validated.
type VerifyEmailUseCase struct {
	Logger *logrus.Logger
}

func NewVerifyEmailUseCase(logger *logrus.Logger) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{Logger: logger}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*entity.User, error) {
	users := uow.Users()

	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerr.ErrUserNotFound
	}

	if user.IsEmailVerified() {
		// Idempotent: redeeming twice is fine.
		return user, nil
	}

	user.MarkEmailVerified()
	if err := users.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.Logger.WithField("user_id", user.ID()).Info("email verified")
	return user, nil
}
