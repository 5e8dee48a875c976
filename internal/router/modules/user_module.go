package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/userkit/account-service/internal/container"
	handlers "github.com/userkit/account-service/internal/interface/http"
	"github.com/userkit/account-service/internal/interface/middleware"
	"github.com/userkit/account-service/pkg/helpers"
)

// UserModule wires account HTTP handlers and auth middleware into routes
// Public: POST /api/register, POST /api/login
// Protected: GET/PUT /api/profile, POST /api/profile/enable|disable,
// GET /api/users/search
// All routes are registered under the given RouterGroup (usually /api)

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil) // 10 req/min per IP

	rg.POST("/register", registerLimiter, m.Handler.RegisterUser)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	// Apply a softer per-IP limiter to all protected routes
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/enable", m.Handler.EnableAccount)
		auth.POST("/profile/disable", m.Handler.DisableAccount)
		// Search users via Elasticsearch
		auth.GET("/users/search", m.Handler.SearchUsers)
	}
}
