package validator

import (
	"strings"

	"bandos-api/core/controller"
	"bandos-api/core/utils"
	"bandos-api/modules/invitation/dto"
)

func ValidateInviteMemberRequest(req *dto.InviteMemberRequest) *controller.ValidationResponse {
	v := &controller.ValidationResponse{}

	if strings.TrimSpace(req.Email) == "" {
		v.Add("email", "email is required")
	} else if !utils.IsValidEmail(req.Email) {
		v.Add("email", "email is not valid")
	}

	return v
}
