package validator

import (
	"strings"

	"bandos-api/core/controller"
	"bandos-api/modules/event/dto"
)

func ValidateCreateEventRequest(req *dto.CreateEventRequest) *controller.ValidationResponse {
	v := &controller.ValidationResponse{}

	if strings.TrimSpace(req.Title) == "" {
		v.Add("title", "title is required")
	}
	if req.EventDate.IsZero() {
		v.Add("event_date", "event date is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		v.Add("location", "location is required")
	}

	return v
}
