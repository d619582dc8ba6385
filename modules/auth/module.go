package auth

import (
	"bandos-api/core/cache"
	"bandos-api/core/database"
	"bandos-api/core/middleware"
	"bandos-api/core/storage"
	"bandos-api/modules/auth/controller"
	"bandos-api/modules/auth/repository"
	"bandos-api/modules/auth/router"
	"bandos-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and returns the repository so other
// modules can resolve users by email.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, c cache.Cache, uploader storage.Uploader) repository.AuthRepositoryInterface {
	repo := repository.NewAuthRepository(db)
	svc := service.NewAuthService(repo, c, uploader)
	ctrl := controller.NewAuthController(svc)
	r := router.NewAuthRouter(ctrl)

	r.Register(g, mw)

	return repo
}
