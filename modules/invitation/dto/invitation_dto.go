package dto

import (
	"time"

	"github.com/google/uuid"
)

type InviteMemberRequest struct {
	Email string `json:"email"`
}

type InvitationResponse struct {
	ID          uuid.UUID `json:"id"`
	BandID      uuid.UUID `json:"band_id"`
	BandName    string    `json:"band_name"`
	InviterName string    `json:"inviter_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type PendingInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int                  `json:"total"`
}
