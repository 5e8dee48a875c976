package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/config"
	"github.com/userkit/account-service/internal/application"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
	"github.com/userkit/account-service/pkg/helpers"
	"github.com/userkit/account-service/pkg/mailer"
	"github.com/userkit/account-service/pkg/response"
	"github.com/userkit/account-service/pkg/validation"
)

const verifyTokenTTL = 24 * time.Hour

// AuthHandler manages the email verification flow. Tokens are single-use,
// random, and live in Redis with a TTL; the actual state change runs through
// the verify use case inside a unit of work.
type AuthHandler struct {
	Tx      repository.TxManager
	Profile *application.GetProfileUseCase
	Verify  *application.VerifyEmailUseCase
	Search  *application.SearchService
	RDB     *redis.Client
	Pub     *helpers.RabbitPublisher
	Cfg     *config.Config
	Logger  *logrus.Logger
}

func NewAuthHandler(
	tx repository.TxManager,
	profile *application.GetProfileUseCase,
	verify *application.VerifyEmailUseCase,
	search *application.SearchService,
	rdb *redis.Client,
	pub *helpers.RabbitPublisher,
	cfg *config.Config,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		Tx:      tx,
		Profile: profile,
		Verify:  verify,
		Search:  search,
		RDB:     rdb,
		Pub:     pub,
		Cfg:     cfg,
		Logger:  logger,
	}
}

func keyVerifyToken(t string) string { return "email:verify:token:" + t }

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// issueVerification stores a fresh single-use token for the user and, when a
// publisher is configured, enqueues the verification email. Returns the link
// the token is embedded in.
func issueVerification(c *gin.Context, rdb *redis.Client, pub *helpers.RabbitPublisher, cfg *config.Config, logger *logrus.Logger, u *entity.User) (string, error) {
	tok, err := genToken(32)
	if err != nil {
		return "", err
	}
	if err := rdb.Set(c.Request.Context(), keyVerifyToken(tok), u.ID().String(), verifyTokenTTL).Err(); err != nil {
		return "", err
	}
	link := cfg.VerifyEmailURL + "?token=" + tok

	if pub != nil && cfg.MailSendEnabled {
		job := mailer.VerificationEmail(u.Email(), u.Username(), link)
		if err := pub.PublishJSON(c.Request.Context(), job); err != nil {
			logger.WithError(err).Warn("failed to enqueue verification email")
		}
	}
	return link, nil
}

// VerifyInit POST /api/auth/verify/init (auth required)
// Issues a verification link and enqueues the email carrying it.
func (h *AuthHandler) VerifyInit(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var user *entity.User
	err := h.Tx.Do(c.Request.Context(), func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		user, err = h.Profile.Execute(ctx, uow, uid)
		return err
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	if user.IsEmailVerified() {
		response.Success(c, http.StatusOK, gin.H{"already_verified": true}, "already verified", nil)
		return
	}
	if h.RDB == nil {
		response.Fail(c, http.StatusServiceUnavailable, "verification unavailable", nil)
		return
	}

	link, err := issueVerification(c, h.RDB, h.Pub, h.Cfg, h.Logger, user)
	if err != nil {
		h.Logger.WithError(err).Error("failed to issue verification token")
		response.Fail(c, http.StatusServiceUnavailable, "verification unavailable", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verify_link": link}, "verification link issued", nil)
}

// VerifyConfirm POST /api/auth/verify/confirm {token}
// Public endpoint; the token is the credential.
func (h *AuthHandler) VerifyConfirm(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if h.RDB == nil {
		response.Fail(c, http.StatusServiceUnavailable, "verification unavailable", nil)
		return
	}

	raw, err := h.RDB.Get(c.Request.Context(), keyVerifyToken(req.Token)).Result()
	if err != nil || raw == "" {
		response.Fail(c, http.StatusBadRequest, "invalid or expired token", nil)
		return
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid or expired token", nil)
		return
	}

	var user *entity.User
	err = h.Tx.Do(c.Request.Context(), func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		user, err = h.Verify.Execute(ctx, uow, uid)
		return err
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	_ = h.RDB.Del(c.Request.Context(), keyVerifyToken(req.Token)).Err()
	if h.Search != nil {
		_ = h.Search.IndexUser(c.Request.Context(), user)
	}

	response.Success(c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
}
