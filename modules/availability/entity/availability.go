package entity

import (
	"time"

	"github.com/google/uuid"
)

// LocationMyPlace marks a slot whose owner can host at their place.
const LocationMyPlace = "my-place"

// AvailabilitySlot is one availability record of a user for an event.
// An all-day slot covers its whole calendar date; an exact slot covers a
// single minute-aligned timestamp. At most one row exists per
// (event, user, available_at).
type AvailabilitySlot struct {
	ID          uuid.UUID `db:"id" json:"id"`
	EventID     uuid.UUID `db:"event_id" json:"event_id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	AvailableAt time.Time `db:"available_at" json:"available_at"`
	IsAllDay    bool      `db:"is_all_day" json:"is_all_day"`
	Location    *string   `db:"location" json:"location,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// AtMyPlace reports whether the slot owner offered to host.
func (s *AvailabilitySlot) AtMyPlace() bool {
	return s.Location != nil && *s.Location == LocationMyPlace
}

// UpcomingAvailability is the earliest future slot of a user in one of
// their events, joined with event columns for display.
type UpcomingAvailability struct {
	EventID     uuid.UUID `db:"event_id" json:"event_id"`
	EventName   string    `db:"event_name" json:"event_name"`
	EventColor  string    `db:"event_color" json:"event_color"`
	AvailableAt time.Time `db:"available_at" json:"available_at"`
	IsAllDay    bool      `db:"is_all_day" json:"is_all_day"`
	Location    *string   `db:"location" json:"location,omitempty"`
}
