package event

import (
	"bandos-api/core/database"
	"bandos-api/core/middleware"
	bandRepository "bandos-api/modules/band/repository"
	"bandos-api/modules/event/controller"
	"bandos-api/modules/event/repository"
	"bandos-api/modules/event/router"
	"bandos-api/modules/event/service"
	"bandos-api/modules/realtime"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, hub *realtime.Hub) {
	repo := repository.NewEventRepository(db)
	bandRepo := bandRepository.NewBandRepository(db)
	svc := service.NewEventService(repo, bandRepo, hub)
	ctrl := controller.NewEventController(svc)
	r := router.NewEventRouter(ctrl)

	r.Register(g, mw)
}
