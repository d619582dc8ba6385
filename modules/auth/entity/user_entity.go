package entity

import (
	"time"

	"bandos-api/core/entity"
)

// Auth providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is the profile created on registration or on first Google sign-in.
type User struct {
	Email       string  `db:"email" json:"email"`
	DisplayName string  `db:"display_name" json:"display_name"`
	PhotoURL    *string `db:"photo_url" json:"photo_url,omitempty"`
	Password    *string `db:"password" json:"-"`
	Provider    string  `db:"provider" json:"provider"`

	entity.BaseEntity
}

// OAuthState is a short-lived anti-forgery token for the OAuth code flow.
type OAuthState struct {
	State     string    `db:"state"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
