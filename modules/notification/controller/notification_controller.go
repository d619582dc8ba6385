package controller

import (
	"bandos-api/core/controller"
	"bandos-api/core/errors"
	"bandos-api/core/params"
	"bandos-api/modules/notification/dto"
	"bandos-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	service *service.NotificationService
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// GetMyNotifications returns the current user's notifications, newest first.
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	queryParams := params.FromContext(ctx)
	resp, err := c.service.GetMyNotifications(ctx.Request().Context(), claims.UserID, queryParams)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "get notifications failed")
	}

	return c.SuccessResponse(ctx, resp, "notifications retrieved")
}

// MarkAsRead marks the given notifications as read.
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	requestData := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	if err := c.service.MarkAsRead(ctx.Request().Context(), claims.UserID, requestData.IDs); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "mark as read failed")
	}

	return c.SuccessResponse(ctx, nil, "notifications marked as read")
}

// MarkAllAsRead marks every notification of the current user as read.
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	if err := c.service.MarkAllAsRead(ctx.Request().Context(), claims.UserID); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "mark all as read failed")
	}

	return c.SuccessResponse(ctx, nil, "all notifications marked as read")
}

// CountUnread returns the unread badge count.
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	count, err := c.service.CountUnread(ctx.Request().Context(), claims.UserID)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "count unread failed")
	}

	return c.SuccessResponse(ctx, map[string]int{"count": count}, "unread count retrieved")
}
