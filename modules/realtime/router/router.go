package router

import (
	"bandos-api/core/middleware"
	"bandos-api/modules/realtime/controller"

	"github.com/labstack/echo/v4"
)

type RealtimeRouter struct {
	controller *controller.RealtimeController
}

func NewRealtimeRouter(controller *controller.RealtimeController) *RealtimeRouter {
	return &RealtimeRouter{
		controller: controller,
	}
}

func (r *RealtimeRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	ws := g.Group("/ws")
	ws.Use(mw.AuthMiddleware())

	ws.GET("/bands/:id", r.controller.SubscribeBand)
}
