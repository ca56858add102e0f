package entity

import (
	"gatherly-api/core/entity"

	"github.com/google/uuid"
)

// Notification types
const (
	TypeAvailabilityChanged = "availability_changed"
	TypeInvitationReceived  = "invitation_received"
)

type Notification struct {
	UserID  uuid.UUID  `db:"user_id" json:"user_id"`
	EventID *uuid.UUID `db:"event_id" json:"event_id,omitempty"`
	Type    string     `db:"type" json:"type"`
	Message string     `db:"message" json:"message"`
	IsRead  bool       `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
