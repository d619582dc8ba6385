package validator

import (
	"strings"

	"bandos-api/core/controller"
	"bandos-api/modules/band/dto"
)

func ValidateCreateBandRequest(req *dto.CreateBandRequest) *controller.ValidationResponse {
	result := &controller.ValidationResponse{}

	if strings.TrimSpace(req.Name) == "" {
		result.Add("name", "band name cannot be empty")
	} else if len(req.Name) > 255 {
		result.Add("name", "band name is too long")
	}

	return result
}
