package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a band-scoped calendar entry. BandID and CreatedBy are weak
// references; deleting a band leaves its events behind as orphans.
type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BandID    uuid.UUID `db:"band_id" json:"band_id"`
	Title     string    `db:"title" json:"title"`
	EventDate time.Time `db:"event_date" json:"event_date"`
	Location  string    `db:"location" json:"location"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EventDetail is an event enriched with the band's name, best-effort with a
// placeholder fallback when the band is gone.
type EventDetail struct {
	Event
	BandName string `db:"band_name" json:"band_name"`
}
