package controller

import (
	"bandos-api/core/controller"
	"bandos-api/core/errors"
	"bandos-api/modules/band/dto"
	"bandos-api/modules/band/service"
	"bandos-api/modules/band/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BandController struct {
	controller.BaseController
	service *service.BandService
}

func NewBandController(service *service.BandService) *BandController {
	return &BandController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// CreateBand creates a band led by the current user.
func (c *BandController) CreateBand(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	requestData := new(dto.CreateBandRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateCreateBandRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	resp, errCreate := c.service.CreateBand(ctx.Request().Context(), requestData, claims.UserID)
	if errCreate != nil {
		return c.ErrorResponse(ctx, errCreate)
	}

	return c.SuccessResponse(ctx, resp, "band created")
}

// ListMyBands lists the bands the current user belongs to.
func (c *BandController) ListMyBands(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	resp, errGet := c.service.ListMyBands(ctx.Request().Context(), claims.UserID)
	if errGet != nil {
		return c.ErrorResponse(ctx, errGet)
	}

	return c.SuccessResponse(ctx, resp, "bands retrieved")
}

// GetBand returns one band with its member list.
func (c *BandController) GetBand(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bandID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid band ID")
	}

	resp, errGet := c.service.GetBand(ctx.Request().Context(), bandID, claims.UserID)
	if errGet != nil {
		return c.ErrorResponse(ctx, errGet)
	}

	return c.SuccessResponse(ctx, resp, "band retrieved")
}

// RemoveMember removes a member from a band (leader only).
func (c *BandController) RemoveMember(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bandID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid band ID")
	}

	memberID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid member ID")
	}

	if errRemove := c.service.RemoveMember(ctx.Request().Context(), bandID, memberID, claims.UserID); errRemove != nil {
		return c.ErrorResponse(ctx, errRemove)
	}

	return c.SuccessResponse(ctx, nil, "member removed")
}

// DeleteBand deletes a band (leader only).
func (c *BandController) DeleteBand(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bandID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid band ID")
	}

	if errDelete := c.service.DeleteBand(ctx.Request().Context(), bandID, claims.UserID); errDelete != nil {
		return c.ErrorResponse(ctx, errDelete)
	}

	return c.SuccessResponse(ctx, nil, "band deleted")
}
