package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title     string    `json:"title"`
	EventDate time.Time `json:"event_date"`
	Location  string    `json:"location"`
}

type EventResponse struct {
	ID        uuid.UUID `json:"id"`
	BandID    uuid.UUID `json:"band_id"`
	BandName  string    `json:"band_name"`
	Title     string    `json:"title"`
	EventDate time.Time `json:"event_date"`
	Location  string    `json:"location"`
	CreatedBy uuid.UUID `json:"created_by"`
	CanDelete bool      `json:"can_delete"`
	CreatedAt time.Time `json:"created_at"`
}

type EventListResponse struct {
	Upcoming []EventResponse `json:"upcoming"`
	Past     []EventResponse `json:"past"`
}
