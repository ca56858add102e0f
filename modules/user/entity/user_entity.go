package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a person who can create events and mark availability. Accounts are
// provisioned upstream; this service only reads them.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	AvatarKey *string   `db:"avatar_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
