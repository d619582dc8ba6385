package entity

import (
	"time"

	"bandos-api/core/entity"

	"github.com/google/uuid"
)

// Band is a named group with exactly one leader. The leader is always a
// member; leadership never transfers.
type Band struct {
	Name     string    `db:"name" json:"name"`
	Slug     string    `db:"slug" json:"slug"`
	LeaderID uuid.UUID `db:"leader_id" json:"leader_id"`

	entity.BaseEntity
}

// BandMember is one row of a band's member set, keyed by user id.
type BandMember struct {
	BandID    uuid.UUID `db:"band_id" json:"band_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MemberDetail is a member row joined with the user profile. DisplayName
// falls back to a placeholder when the profile is missing.
type MemberDetail struct {
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	PhotoURL    *string   `db:"photo_url" json:"photo_url,omitempty"`
	JoinedAt    time.Time `db:"joined_at" json:"joined_at"`
}
