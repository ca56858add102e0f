package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a named group of users planning availability together.
type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Color     string    `db:"color" json:"color"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Participant is a user attached to an event, joined with user columns
// needed for display.
type Participant struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	AvatarKey *string   `db:"avatar_key" json:"-"`
	JoinedAt  time.Time `db:"created_at" json:"joined_at"`
}
