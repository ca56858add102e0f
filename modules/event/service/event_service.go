package service

import (
	"context"
	"strings"

	"gatherly-api/core/constants"
	"gatherly-api/core/errors"
	"gatherly-api/modules/event/dto"
	"gatherly-api/modules/event/entity"
	"gatherly-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Non-creators may only own this many events at a time.
const maxCreatedEvents = 2

// EventService handles event business logic
type EventService struct {
	repo repository.EventRepositoryInterface
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	GetMyEvents(ctx context.Context, userID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepositoryInterface) EventServiceInterface {
	return &EventService{repo: repo}
}

// CreateEvent creates an event and attaches its participants. The creator is
// always part of the participant set.
func (s *EventService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}

	count, err := s.repo.CountCreatedBy(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check created events", err)
	}
	if count >= maxCreatedEvents {
		return nil, errors.NewAppError(errors.ErrLimitReached, "You have reached the limit of events you can create", nil)
	}

	event := &entity.Event{
		Name:      req.Name,
		Slug:      slug.Make(req.Name),
		Color:     strings.ToUpper(req.Color),
		CreatedBy: userID,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	if err := s.repo.SyncParticipants(ctx, created.ID, assignedUserIDs(req.Participants, userID)); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to assign participants", err)
	}

	participants, _ := s.repo.GetParticipants(ctx, created.ID)
	return dto.ToEventResponse(created, participants), nil
}

// GetEvent returns an event with its participants. Only participants may view it.
func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	isMember, err := s.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if !isMember && event.CreatedBy != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "You are not a participant of this event", nil)
	}

	participants, _ := s.repo.GetParticipants(ctx, eventID)
	return dto.ToEventResponse(event, participants), nil
}

// GetMyEvents lists events the user participates in.
func (s *EventService) GetMyEvents(ctx context.Context, userID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	events, err := s.repo.ListByMember(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to list events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		participants, _ := s.repo.GetParticipants(ctx, e.ID)
		result = append(result, *dto.ToEventResponse(&e, participants))
	}

	return result, nil
}

// UpdateEvent updates name, color and the participant set. Creator only.
func (s *EventService) UpdateEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.CreatedBy != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the creator can update this event", nil)
	}

	event.Name = req.Name
	event.Slug = slug.Make(req.Name)
	event.Color = strings.ToUpper(req.Color)

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}

	if err := s.repo.SyncParticipants(ctx, eventID, assignedUserIDs(req.Participants, userID)); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to assign participants", err)
	}

	participants, _ := s.repo.GetParticipants(ctx, eventID)
	return dto.ToEventResponse(event, participants), nil
}

// DeleteEvent removes the event, its availability rows and participant links.
// Creator only.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.CreatedBy != userID {
		return errors.NewAppError(errors.ErrForbidden, "Only the creator can delete this event", nil)
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}

	return nil
}

// assignedUserIDs parses the selected participant ids, always includes the
// acting user and removes duplicates.
func assignedUserIDs(selected []string, currentUserID uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]bool{currentUserID: true}
	ids := []uuid.UUID{currentUserID}

	for _, raw := range selected {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids
}
