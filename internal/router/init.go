package router

import (
	"github.com/userkit/account-service/internal/application"
	"github.com/userkit/account-service/internal/container"
	pginfra "github.com/userkit/account-service/internal/infrastructure/postgres"
	handlers "github.com/userkit/account-service/internal/interface/http"
	"github.com/userkit/account-service/internal/router/modules"
	"github.com/userkit/account-service/pkg/helpers"
)

// InitModules builds the use cases and handlers from the container singletons
// and registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	txm := pginfra.NewTxManager(container.GetPGPool(), logger)
	hasher := &helpers.BcryptHasher{Cost: cfg.BcryptCost}

	search := application.NewSearchService(container.GetES(), cfg.ESUsersIndex, logger)

	registerUC := application.NewRegisterUseCase(hasher, logger)
	authUC := application.NewAuthenticateUseCase(hasher, container.GetJWT(), logger)
	profileUC := application.NewGetProfileUseCase(logger)
	updateUC := application.NewUpdateProfileUseCase(hasher, logger)
	accessUC := application.NewAccessUseCase(logger)
	verifyUC := application.NewVerifyEmailUseCase(logger)

	userHandler := handlers.NewUserHandler(
		txm, registerUC, authUC, profileUC, updateUC, accessUC,
		search, container.GetRedis(), container.GetRabbitPub(), cfg, logger,
	)
	authHandler := handlers.NewAuthHandler(
		txm, profileUC, verifyUC, search,
		container.GetRedis(), container.GetRabbitPub(), cfg, logger,
	)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
