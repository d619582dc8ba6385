package controller

import (
	"bandos-api/core/controller"
	"bandos-api/core/errors"
	"bandos-api/modules/event/dto"
	"bandos-api/modules/event/service"
	"bandos-api/modules/event/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	service *service.EventService
}

func NewEventController(service *service.EventService) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// CreateEvent adds an event to a band's calendar (members only).
func (c *EventController) CreateEvent(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bandID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid band ID")
	}

	requestData := new(dto.CreateEventRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateCreateEventRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	resp, errCreate := c.service.CreateEvent(ctx.Request().Context(), bandID, requestData, claims.UserID)
	if errCreate != nil {
		return c.ErrorResponse(ctx, errCreate)
	}

	return c.SuccessResponse(ctx, resp, "event created")
}

// ListMyEvents lists the events of all the requester's bands.
func (c *EventController) ListMyEvents(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	resp, errList := c.service.ListMyEvents(ctx.Request().Context(), claims.UserID)
	if errList != nil {
		return c.ErrorResponse(ctx, errList)
	}

	return c.SuccessResponse(ctx, resp, "events retrieved")
}

// GetEvent returns one event.
func (c *EventController) GetEvent(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid event ID")
	}

	resp, errGet := c.service.GetEvent(ctx.Request().Context(), eventID, claims.UserID)
	if errGet != nil {
		return c.ErrorResponse(ctx, errGet)
	}

	return c.SuccessResponse(ctx, resp, "event retrieved")
}

// DeleteEvent removes an event (creator or band leader).
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid event ID")
	}

	if errDelete := c.service.DeleteEvent(ctx.Request().Context(), eventID, claims.UserID); errDelete != nil {
		return c.ErrorResponse(ctx, errDelete)
	}

	return c.SuccessResponse(ctx, nil, "event deleted")
}
