package router

import (
	"bandos-api/core/middleware"
	"bandos-api/modules/invitation/controller"

	"github.com/labstack/echo/v4"
)

type InvitationRouter struct {
	controller *controller.InvitationController
}

func NewInvitationRouter(controller *controller.InvitationController) *InvitationRouter {
	return &InvitationRouter{
		controller: controller,
	}
}

func (r *InvitationRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	invitations := g.Group("/invitations")
	invitations.Use(mw.AuthMiddleware())

	invitations.GET("", r.controller.ListMyInvitations)
	invitations.GET("/count", r.controller.CountPending)
	invitations.POST("/:id/accept", r.controller.Accept)
	invitations.POST("/:id/reject", r.controller.Reject)

	bands := g.Group("/bands")
	bands.Use(mw.AuthMiddleware())
	bands.POST("/:id/invitations", r.controller.InviteMember)
}
