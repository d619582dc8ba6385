package validator

import (
	"strings"

	"bandos-api/core/controller"
	"bandos-api/core/utils"
	"bandos-api/modules/auth/dto"
)

const minPasswordLength = 8

func ValidateRegisterRequest(req *dto.RegisterRequest) *controller.ValidationResponse {
	v := &controller.ValidationResponse{}

	if strings.TrimSpace(req.DisplayName) == "" {
		v.Add("display_name", "display name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		v.Add("email", "email is required")
	} else if !utils.IsValidEmail(req.Email) {
		v.Add("email", "email is not valid")
	}
	if len(req.Password) < minPasswordLength {
		v.Add("password", "password must be at least 8 characters")
	}

	return v
}

func ValidateLoginRequest(req *dto.LoginRequest) *controller.ValidationResponse {
	v := &controller.ValidationResponse{}

	if strings.TrimSpace(req.Email) == "" {
		v.Add("email", "email is required")
	}
	if req.Password == "" {
		v.Add("password", "password is required")
	}

	return v
}

func ValidateRefreshRequest(req *dto.RefreshRequest) *controller.ValidationResponse {
	v := &controller.ValidationResponse{}

	if req.RefreshToken == "" {
		v.Add("refresh_token", "refresh token is required")
	}

	return v
}

func ValidateUpdateProfileRequest(req *dto.UpdateProfileRequest) *controller.ValidationResponse {
	v := &controller.ValidationResponse{}

	if strings.TrimSpace(req.DisplayName) == "" {
		v.Add("display_name", "display name is required")
	}

	return v
}
