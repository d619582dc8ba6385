package controller

import (
	"bandos-api/core/controller"
	"bandos-api/core/errors"
	"bandos-api/core/logger"
	"bandos-api/modules/band/repository"
	"bandos-api/modules/realtime"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RealtimeController struct {
	controller.BaseController
	hub      *realtime.Hub
	bandRepo repository.BandRepositoryInterface
}

func NewRealtimeController(hub *realtime.Hub, bandRepo repository.BandRepositoryInterface) *RealtimeController {
	return &RealtimeController{
		BaseController: controller.NewBaseController(),
		hub:            hub,
		bandRepo:       bandRepo,
	}
}

// SubscribeBand upgrades to a websocket delivering change signals for one
// band. Only members may subscribe.
func (c *RealtimeController) SubscribeBand(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bandID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid band ID")
	}

	isMember, err := c.bandRepo.IsMember(ctx.Request().Context(), bandID, claims.UserID)
	if err != nil {
		logger.Error("RealtimeController:SubscribeBand:IsMember:Error:", err)
		return c.InternalServerError(errors.ErrInternalServer, "subscription failed")
	}
	if !isMember {
		return c.Forbidden(errors.ErrForbidden, "not a member of this band")
	}

	return c.hub.HandleBandSocket(ctx, bandID)
}
