package band

import (
	"bandos-api/core/database"
	"bandos-api/core/middleware"
	"bandos-api/modules/band/controller"
	"bandos-api/modules/band/repository"
	"bandos-api/modules/band/router"
	"bandos-api/modules/band/service"
	"bandos-api/modules/realtime"

	"github.com/labstack/echo/v4"
)

// Init initializes the band module and returns the service for use by other
// modules.
func Init(g *echo.Group, db database.Database, mw *middleware.Middleware, hub *realtime.Hub) *service.BandService {
	repo := repository.NewBandRepository(db)
	svc := service.NewBandService(repo, hub)
	ctrl := controller.NewBandController(svc)
	r := router.NewBandRouter(ctrl)

	r.Register(g, mw)

	return svc
}
