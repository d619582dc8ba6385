package invitation

import (
	"bandos-api/core/database"
	"bandos-api/core/middleware"
	"bandos-api/core/queue"
	authRepository "bandos-api/modules/auth/repository"
	bandRepository "bandos-api/modules/band/repository"
	"bandos-api/modules/invitation/controller"
	"bandos-api/modules/invitation/repository"
	"bandos-api/modules/invitation/router"
	"bandos-api/modules/invitation/service"
	"bandos-api/modules/realtime"

	"github.com/labstack/echo/v4"
)

// Init initializes the invitation module.
func Init(
	g *echo.Group,
	db database.Database,
	mw *middleware.Middleware,
	authRepo authRepository.AuthRepositoryInterface,
	notifications service.NotificationCreator,
	queueClient queue.Client,
	hub *realtime.Hub,
) {
	repo := repository.NewInvitationRepository(db)
	bandRepo := bandRepository.NewBandRepository(db)
	svc := service.NewInvitationService(repo, bandRepo, authRepo, notifications, queueClient, hub)
	ctrl := controller.NewInvitationController(svc)
	r := router.NewInvitationRouter(ctrl)

	r.Register(g, mw)
}
