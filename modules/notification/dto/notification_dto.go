package dto

import (
	"github.com/google/uuid"
)

// AvailabilityChangedPayload is the queue payload announcing that a
// participant changed their availability. Recipients are resolved at
// enqueue time from the event's participant set.
type AvailabilityChangedPayload struct {
	EventID    uuid.UUID   `json:"event_id"`
	EventName  string      `json:"event_name"`
	ActorID    uuid.UUID   `json:"actor_id"`
	ActorName  string      `json:"actor_name"`
	Date       string      `json:"date"`
	Removed    bool        `json:"removed"`
	Recipients []uuid.UUID `json:"recipients"`
}

// InvitationCreatedPayload is the queue payload for a new invitation.
type InvitationCreatedPayload struct {
	InvitationID uuid.UUID `json:"invitation_id"`
	EventID      uuid.UUID `json:"event_id"`
	EventName    string    `json:"event_name"`
	InviterID    uuid.UUID `json:"inviter_id"`
	InviterName  string    `json:"inviter_name"`
	Email        string    `json:"email"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids"`
}
