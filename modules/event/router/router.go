package router

import (
	"bandos-api/core/middleware"
	"bandos-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{
		controller: controller,
	}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/events")
	events.Use(mw.AuthMiddleware())

	events.GET("", r.controller.ListMyEvents)
	events.GET("/:id", r.controller.GetEvent)
	events.DELETE("/:id", r.controller.DeleteEvent)

	bands := g.Group("/bands")
	bands.Use(mw.AuthMiddleware())
	bands.POST("/:id/events", r.controller.CreateEvent)
}
