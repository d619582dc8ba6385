package router

import (
	"bandos-api/core/middleware"
	"bandos-api/modules/band/controller"

	"github.com/labstack/echo/v4"
)

type BandRouter struct {
	controller *controller.BandController
}

func NewBandRouter(controller *controller.BandController) *BandRouter {
	return &BandRouter{
		controller: controller,
	}
}

func (r *BandRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	bands := g.Group("/bands")
	bands.Use(mw.AuthMiddleware())

	bands.POST("", r.controller.CreateBand)
	bands.GET("", r.controller.ListMyBands)
	bands.GET("/:id", r.controller.GetBand)
	bands.DELETE("/:id", r.controller.DeleteBand)
	bands.DELETE("/:id/members/:userId", r.controller.RemoveMember)
}
