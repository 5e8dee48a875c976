package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/config"
	"github.com/userkit/account-service/internal/application"
	"github.com/userkit/account-service/internal/domain/entity"
	"github.com/userkit/account-service/internal/domain/repository"
	"github.com/userkit/account-service/internal/interface/middleware"
	"github.com/userkit/account-service/pkg/helpers"
	"github.com/userkit/account-service/pkg/response"
	"github.com/userkit/account-service/pkg/validation"
)

// UserHandler exposes registration, authentication and profile management.
// Every write goes through one transaction-scoped unit of work; the
// Elasticsearch mirror is refreshed best-effort after commit.
type UserHandler struct {
	Tx       repository.TxManager
	Register *application.RegisterUseCase
	Auth     *application.AuthenticateUseCase
	Profile  *application.GetProfileUseCase
	Update   *application.UpdateProfileUseCase
	Access   *application.AccessUseCase
	Search   *application.SearchService
	RDB      *redis.Client
	Pub      *helpers.RabbitPublisher
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewUserHandler(
	tx repository.TxManager,
	register *application.RegisterUseCase,
	auth *application.AuthenticateUseCase,
	profile *application.GetProfileUseCase,
	update *application.UpdateProfileUseCase,
	access *application.AccessUseCase,
	search *application.SearchService,
	rdb *redis.Client,
	pub *helpers.RabbitPublisher,
	cfg *config.Config,
	logger *logrus.Logger,
) *UserHandler {
	return &UserHandler{
		Tx:       tx,
		Register: register,
		Auth:     auth,
		Profile:  profile,
		Update:   update,
		Access:   access,
		Search:   search,
		RDB:      rdb,
		Pub:      pub,
		Cfg:      cfg,
		Logger:   logger,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	CurrentPassword string  `json:"current_password" binding:"required"`
	Username        *string `json:"username" binding:"omitempty,uname"`
	Email           *string `json:"email" binding:"omitempty,email"`
	NewPassword     *string `json:"new_password" binding:"omitempty,pwd"`
}

func profileBody(u *entity.User) gin.H {
	return gin.H{
		"id":                u.ID(),
		"username":          u.Username(),
		"email":             u.Email(),
		"disabled":          u.Disabled(),
		"is_email_verified": u.IsEmailVerified(),
		"created_at":        u.CreatedAt(),
		"updated_at":        u.UpdatedAt(),
	}
}

// RegisterUser POST /api/register
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	var user *entity.User
	err := h.Tx.Do(c.Request.Context(), func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		user, err = h.Register.Execute(ctx, uow, application.RegisterUserDTO{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		return err
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.indexUser(c, user)

	// Kick off verification right away; a failure here never fails the
	// registration itself.
	if h.RDB != nil {
		if _, err := issueVerification(c, h.RDB, h.Pub, h.Cfg, h.Logger, user); err != nil {
			h.Logger.WithError(err).Warn("failed to issue verification on registration")
		}
	}

	response.Success(c, http.StatusCreated, profileBody(user), "user registered", nil)
}

// Login POST /api/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	var res application.TokenResult
	err := h.Tx.Do(c.Request.Context(), func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		res, err = h.Auth.Execute(ctx, uow, req.Username, req.Password)
		return err
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.storeSession(c, res)

	response.Success(c, http.StatusOK, gin.H{
		"access_token": res.AccessToken,
		"token_type":   res.TokenType,
	}, "login successful", gin.H{"expires_at": res.ExpiresAt})
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
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
	response.Success(c, http.StatusOK, profileBody(user), "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	var user *entity.User
	err := h.Tx.Do(c.Request.Context(), func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		user, err = h.Update.Execute(ctx, uow, uid, application.UpdateProfileDTO{
			CurrentPassword: req.CurrentPassword,
			Username:        req.Username,
			Email:           req.Email,
			NewPassword:     req.NewPassword,
		})
		return err
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.refreshSession(c, user)
	h.indexUser(c, user)
	response.Success(c, http.StatusOK, profileBody(user), "profile updated", nil)
}

// EnableAccount POST /api/profile/enable
func (h *UserHandler) EnableAccount(c *gin.Context) {
	h.setAccess(c, true)
}

// DisableAccount POST /api/profile/disable
func (h *UserHandler) DisableAccount(c *gin.Context) {
	h.setAccess(c, false)
}

func (h *UserHandler) setAccess(c *gin.Context, enabled bool) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var user *entity.User
	err := h.Tx.Do(c.Request.Context(), func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		if enabled {
			user, err = h.Access.Enable(ctx, uow, uid)
		} else {
			user, err = h.Access.Disable(ctx, uow, uid)
		}
		return err
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	if !enabled && h.RDB != nil {
		// A disabled account should not keep an active session.
		_ = h.RDB.Del(c.Request.Context(), middleware.SessionKey(uid.String())).Err()
	}
	h.indexUser(c, user)

	msg := "account disabled"
	if enabled {
		msg = "account enabled"
	}
	response.Success(c, http.StatusOK, profileBody(user), msg, nil)
}

// SearchUsers GET /api/users/search?q=...&size=...
func (h *UserHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Search.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("user search failed")
		response.Fail(c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func (h *UserHandler) storeSession(c *gin.Context, res application.TokenResult) {
	if h.RDB == nil {
		return
	}
	ctx := c.Request.Context()
	key := middleware.SessionKey(res.UserID.String())
	fields := map[string]any{
		"user_id":  res.UserID.String(),
		"username": res.Username,
		"email":    res.Email,
		"login_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.RDB.HSet(ctx, key, fields).Err(); err != nil {
		h.Logger.WithError(err).Warn("failed to store session")
		return
	}
	_ = h.RDB.ExpireAt(ctx, key, res.ExpiresAt).Err()
}

// refreshSession keeps the cached session hash in sync after a profile
// change, without touching its TTL.
func (h *UserHandler) refreshSession(c *gin.Context, u *entity.User) {
	if h.RDB == nil {
		return
	}
	key := middleware.SessionKey(u.ID().String())
	ctx := c.Request.Context()
	if n, err := h.RDB.Exists(ctx, key).Result(); err != nil || n == 0 {
		return
	}
	_ = h.RDB.HSet(ctx, key, map[string]any{
		"username": u.Username(),
		"email":    u.Email(),
	}).Err()
}

func (h *UserHandler) indexUser(c *gin.Context, u *entity.User) {
	if h.Search == nil || u == nil {
		return
	}
	_ = h.Search.IndexUser(c.Request.Context(), u)
}

// currentUserID reads the authenticated user id the Auth middleware stored.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("userID")
	uid, err := uuid.Parse(raw)
	if err != nil {
		response.AbortFail(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return uid, true
}
