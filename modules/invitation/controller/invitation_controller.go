package controller

import (
	"bandos-api/core/controller"
	"bandos-api/core/errors"
	"bandos-api/modules/invitation/dto"
	"bandos-api/modules/invitation/service"
	"bandos-api/modules/invitation/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type InvitationController struct {
	controller.BaseController
	service *service.InvitationService
}

func NewInvitationController(service *service.InvitationService) *InvitationController {
	return &InvitationController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// InviteMember invites an email address to a band (leader only).
func (c *InvitationController) InviteMember(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	bandID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid band ID")
	}

	requestData := new(dto.InviteMemberRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateInviteMemberRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	invitation, errInvite := c.service.InviteMember(ctx.Request().Context(), bandID, requestData, claims.UserID, claims.DisplayName)
	if errInvite != nil {
		return c.ErrorResponse(ctx, errInvite)
	}

	return c.SuccessResponse(ctx, invitation, "invitation sent")
}

// ListMyInvitations lists invitations pending for the current user's email.
func (c *InvitationController) ListMyInvitations(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	resp, errList := c.service.ListMyInvitations(ctx.Request().Context(), claims.Email)
	if errList != nil {
		return c.ErrorResponse(ctx, errList)
	}

	return c.SuccessResponse(ctx, resp, "invitations retrieved")
}

// CountPending returns the pending-invitation count for the badge.
func (c *InvitationController) CountPending(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	count, errCount := c.service.CountPending(ctx.Request().Context(), claims.Email)
	if errCount != nil {
		return c.ErrorResponse(ctx, errCount)
	}

	return c.SuccessResponse(ctx, map[string]int{"count": count}, "count retrieved")
}

// Accept joins the current user to the band named by the invitation.
func (c *InvitationController) Accept(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	invitationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid invitation ID")
	}

	if errAccept := c.service.Accept(ctx.Request().Context(), invitationID, claims.UserID, claims.Email); errAccept != nil {
		return c.ErrorResponse(ctx, errAccept)
	}

	return c.SuccessResponse(ctx, nil, "invitation accepted")
}

// Reject deletes the invitation without joining the band.
func (c *InvitationController) Reject(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	invitationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid invitation ID")
	}

	if errReject := c.service.Reject(ctx.Request().Context(), invitationID, claims.Email); errReject != nil {
		return c.ErrorResponse(ctx, errReject)
	}

	return c.SuccessResponse(ctx, nil, "invitation rejected")
}
