package dto

import (
	"regexp"
	"time"

	"gatherly-api/core/errors"
	"gatherly-api/modules/invitation/entity"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type CreateInvitationRequest struct {
	Email string `json:"email"`
}

func (r *CreateInvitationRequest) Validate() *errors.AppError {
	if !emailPattern.MatchString(r.Email) {
		return errors.NewAppError(errors.ErrInvalidInput, "Please provide a valid email address", nil)
	}
	return nil
}

type InvitationResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToInvitationResponse maps the entity. The token is only exposed to the
// inviter right after creation.
func ToInvitationResponse(invitation *entity.Invitation, includeToken bool) *InvitationResponse {
	resp := &InvitationResponse{
		ID:        invitation.ID.String(),
		EventID:   invitation.EventID.String(),
		Email:     invitation.Email,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt,
	}
	if includeToken {
		resp.Token = invitation.Token
	}
	return resp
}
