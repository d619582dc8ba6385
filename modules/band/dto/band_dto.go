package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBandRequest struct {
	Name string `json:"name"`
}

type BandResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LeaderID  uuid.UUID `json:"leader_id"`
	Role      string    `json:"role"` // "leader" or "member"
	CreatedAt time.Time `json:"created_at"`
}

type MemberResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	IsLeader    bool      `json:"is_leader"`
	JoinedAt    time.Time `json:"joined_at"`
}

type BandDetailResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	LeaderID  uuid.UUID        `json:"leader_id"`
	Role      string           `json:"role"`
	Members   []MemberResponse `json:"members"`
	CreatedAt time.Time        `json:"created_at"`
}

type BandListResponse struct {
	Bands []BandResponse `json:"bands"`
	Total int            `json:"total"`
}
