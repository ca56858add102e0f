package entity

import (
	"time"

	"github.com/google/uuid"
)

// Invitation statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// Invitation lets an event participant bring someone in by email. The token
// is single-use and expires.
type Invitation struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	InviterID uuid.UUID `db:"inviter_id" json:"inviter_id"`
	Email     string    `db:"email" json:"email"`
	Token     string    `db:"token" json:"-"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
