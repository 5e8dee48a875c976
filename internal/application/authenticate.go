package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/internal/domain/domainerr"
	"github.com/userkit/account-service/internal/domain/repository"
)

// TokenResult is what a successful authentication yields. The user fields
// let callers build sessions without decoding the token again.
type TokenResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	UserID      uuid.UUID
	Username    string
	Email       string
}

type AuthenticateUseCase struct {
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger
}

func NewAuthenticateUseCase(hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) *AuthenticateUseCase {
	return &AuthenticateUseCase{Hasher: hasher, Tokens: tokens, Logger: logger}
}

// Execute verifies the credentials and issues an access token. Unknown
// username and wrong password produce the same error, so responses cannot be
// used to enumerate accounts. A disabled account fails before any token is
// issued; email verification is deliberately not checked here, it gates the
// verified-only endpoints instead.
func (uc *AuthenticateUseCase) Execute(ctx context.Context, uow repository.UnitOfWork, username, password string) (TokenResult, error) {
	user, err := uow.Users().GetByUsername(ctx, username)
	if err != nil {
		return TokenResult{}, err
	}
	if user == nil || !uc.Hasher.Verify(user.HashedPassword(), password) {
		uc.Logger.WithField("username", username).Warn("failed login attempt")
		return TokenResult{}, domainerr.ErrInvalidCredentials
	}

	if !user.IsEnabled() {
		uc.Logger.WithField("username", username).Warn("login blocked for disabled account")
		return TokenResult{}, domainerr.ErrUserDisabled
	}

	token, expiresAt, err := uc.Tokens.Issue(user.ID(), user.Username(), user.Email())
	if err != nil {
		return TokenResult{}, err
	}

	uc.Logger.WithFields(logrus.Fields{
		"user_id":  user.ID(),
		"username": username,
	}).Info("user authenticated")

	return TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		UserID:      user.ID(),
		Username:    user.Username(),
		Email:       user.Email(),
	}, nil
}
