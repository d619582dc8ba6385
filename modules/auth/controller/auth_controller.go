package controller

import (
	"io"
	"net/http"

	"bandos-api/core/controller"
	"bandos-api/core/errors"
	"bandos-api/core/utils"
	"bandos-api/modules/auth/dto"
	"bandos-api/modules/auth/service"
	"bandos-api/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

// Avatars are small profile images, 5 MB is plenty.
const maxAvatarSize = 5 << 20

type AuthController struct {
	controller.BaseController
	service *service.AuthService
}

func NewAuthController(service *service.AuthService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// Register creates a new local account.
func (c *AuthController) Register(ctx echo.Context) error {
	requestData := new(dto.RegisterRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateRegisterRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	resp, errRegister := c.service.Register(ctx.Request().Context(), requestData)
	if errRegister != nil {
		return c.ErrorResponse(ctx, errRegister)
	}

	return c.SuccessResponse(ctx, resp, "registered")
}

// Login authenticates a local account.
func (c *AuthController) Login(ctx echo.Context) error {
	requestData := new(dto.LoginRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	resp, errLogin := c.service.Login(ctx.Request().Context(), requestData)
	if errLogin != nil {
		return c.ErrorResponse(ctx, errLogin)
	}

	return c.SuccessResponse(ctx, resp, "logged in")
}

// Logout revokes the current access token.
func (c *AuthController) Logout(ctx echo.Context) error {
	token, err := utils.GetTokenFromHeader(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrMissingAuthorizationHeader, "Missing authorization header")
	}

	if errLogout := c.service.Logout(ctx.Request().Context(), token); errLogout != nil {
		return c.ErrorResponse(ctx, errLogout)
	}

	return c.SuccessResponse(ctx, nil, "logged out")
}

// Refresh exchanges a refresh token for a new access token.
func (c *AuthController) Refresh(ctx echo.Context) error {
	requestData := new(dto.RefreshRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateRefreshRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	resp, errRefresh := c.service.Refresh(ctx.Request().Context(), requestData.RefreshToken)
	if errRefresh != nil {
		return c.ErrorResponse(ctx, errRefresh)
	}

	return c.SuccessResponse(ctx, resp, "token refreshed")
}

// GoogleAuth redirects the browser to Google's consent screen.
func (c *AuthController) GoogleAuth(ctx echo.Context) error {
	url, errURL := c.service.GoogleAuthURL(ctx.Request().Context())
	if errURL != nil {
		return c.ErrorResponse(ctx, errURL)
	}

	return ctx.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback finishes the Google sign-in flow.
func (c *AuthController) GoogleCallback(ctx echo.Context) error {
	state := ctx.QueryParam("state")
	code := ctx.QueryParam("code")
	if state == "" || code == "" {
		return c.BadRequest(errors.ErrInvalidRequestData, "Missing state or code")
	}

	resp, errCallback := c.service.GoogleCallback(ctx.Request().Context(), state, code)
	if errCallback != nil {
		return c.ErrorResponse(ctx, errCallback)
	}

	return c.SuccessResponse(ctx, resp, "logged in")
}

// Me returns the current user's profile.
func (c *AuthController) Me(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	resp, errGet := c.service.Me(ctx.Request().Context(), claims.UserID)
	if errGet != nil {
		return c.ErrorResponse(ctx, errGet)
	}

	return c.SuccessResponse(ctx, resp, "profile retrieved")
}

// UpdateProfile updates the current user's display name.
func (c *AuthController) UpdateProfile(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	requestData := new(dto.UpdateProfileRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateUpdateProfileRequest(requestData)
	if validationResult.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	if errUpdate := c.service.UpdateProfile(ctx.Request().Context(), claims.UserID, requestData); errUpdate != nil {
		return c.ErrorResponse(ctx, errUpdate)
	}

	return c.SuccessResponse(ctx, nil, "profile updated")
}

// UpdateAvatar uploads a new avatar from a multipart form.
func (c *AuthController) UpdateAvatar(ctx echo.Context) error {
	claims, err := c.SessionClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Missing avatar file")
	}
	if fileHeader.Size > maxAvatarSize {
		return c.BadRequest(errors.ErrInvalidInput, "Avatar file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to read avatar file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize+1))
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to read avatar file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	resp, errUpload := c.service.UpdateAvatar(ctx.Request().Context(), claims.UserID, contentType, data)
	if errUpload != nil {
		return c.ErrorResponse(ctx, errUpload)
	}

	return c.SuccessResponse(ctx, resp, "avatar updated")
}
