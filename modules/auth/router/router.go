package router

import (
	"bandos-api/core/middleware"
	"bandos-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		controller: controller,
	}
}

func (r *AuthRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	auth := g.Group("/auth")

	auth.POST("/register", r.controller.Register)
	auth.POST("/login", r.controller.Login)
	auth.POST("/refresh", r.controller.Refresh)
	auth.GET("/google", r.controller.GoogleAuth)
	auth.GET("/google/callback", r.controller.GoogleCallback)

	me := auth.Group("", mw.AuthMiddleware())
	me.POST("/logout", r.controller.Logout)
	me.GET("/me", r.controller.Me)
	me.PUT("/me", r.controller.UpdateProfile)
	me.PUT("/me/avatar", r.controller.UpdateAvatar)
}
