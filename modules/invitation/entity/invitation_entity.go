package entity

import (
	"time"

	"github.com/google/uuid"
)

// An invitation is pending for its whole life: acceptance and rejection both
// delete the row rather than flipping the status.
type InvitationStatus string

const (
	InvitationStatusPending InvitationStatus = "pending"
)

// Invitation is a pending offer of band membership addressed to an email.
// BandID and InvitedBy are weak references; the band or the inviter may be
// gone by the time the invitation is read.
type Invitation struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	BandID       uuid.UUID        `db:"band_id" json:"band_id"`
	InvitedEmail string           `db:"invited_email" json:"invited_email"`
	InvitedBy    uuid.UUID        `db:"invited_by" json:"invited_by"`
	Status       InvitationStatus `db:"status" json:"status"`
	Token        string           `db:"token" json:"-"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// InvitationDetail is an invitation enriched with the band's name and the
// inviter's display name, both best-effort with placeholder fallbacks.
type InvitationDetail struct {
	ID          uuid.UUID `db:"id" json:"id"`
	BandID      uuid.UUID `db:"band_id" json:"band_id"`
	BandName    string    `db:"band_name" json:"band_name"`
	InvitedBy   uuid.UUID `db:"invited_by" json:"invited_by"`
	InviterName string    `db:"inviter_name" json:"inviter_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
