package dto

import (
	"regexp"
	"time"

	"gatherly-api/core/errors"
	"gatherly-api/modules/event/entity"
)

var colorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

type CreateEventRequest struct {
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	Participants []string `json:"participants"`
}

func (r *CreateEventRequest) Validate() *errors.AppError {
	if r.Name == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Please provide an event name", nil)
	}
	if !colorPattern.MatchString(r.Color) {
		return errors.NewAppError(errors.ErrInvalidInput, "Please provide a 6-digit hex color", nil)
	}
	return nil
}

type UpdateEventRequest struct {
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	Participants []string `json:"participants"`
}

func (r *UpdateEventRequest) Validate() *errors.AppError {
	if r.Name == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Please provide an event name", nil)
	}
	if !colorPattern.MatchString(r.Color) {
		return errors.NewAppError(errors.ErrInvalidInput, "Please provide a 6-digit hex color", nil)
	}
	return nil
}

type ParticipantResponse struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

type EventResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Slug         string                `json:"slug"`
	Color        string                `json:"color"`
	CreatedBy    string                `json:"created_by"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func ToEventResponse(event *entity.Event, participants []entity.Participant) *EventResponse {
	resp := &EventResponse{
		ID:           event.ID.String(),
		Name:         event.Name,
		Slug:         event.Slug,
		Color:        event.Color,
		CreatedBy:    event.CreatedBy.String(),
		Participants: make([]ParticipantResponse, 0, len(participants)),
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}

	for _, p := range participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			UserID:   p.UserID.String(),
			Name:     p.Name,
			Email:    p.Email,
			JoinedAt: p.JoinedAt,
		})
	}

	return resp
}
