package service

import (
	"context"
	"sort"
	"time"

	"gatherly-api/core/constants"
	"gatherly-api/core/errors"
	"gatherly-api/core/logger"
	"gatherly-api/modules/availability/dto"
	"gatherly-api/modules/availability/entity"
	"gatherly-api/modules/availability/repository"
	evententity "gatherly-api/modules/event/entity"
	notifdto "gatherly-api/modules/notification/dto"

	"github.com/google/uuid"
)

// EventDirectory is the slice of the event repository the availability
// service needs.
type EventDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*evententity.Event, error)
	GetParticipants(ctx context.Context, eventID uuid.UUID) ([]evententity.Participant, error)
	IsParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error)
}

// ChangePublisher announces availability changes to the other participants.
type ChangePublisher interface {
	PublishAvailabilityChanged(ctx context.Context, payload notifdto.AvailabilityChangedPayload) error
}

// AvailabilityService handles availability business logic
type AvailabilityService struct {
	repo      repository.AvailabilityRepositoryInterface
	events    EventDirectory
	publisher ChangePublisher
	resolver  *CommonSlotResolver
	loc       *time.Location
	now       func() time.Time
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	AddAvailability(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.AddAvailabilityRequest) (*dto.SlotResponse, *errors.AppError)
	SetLocation(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.SetLocationRequest) *errors.AppError
	RemoveAvailability(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string) *errors.AppError
	GetEventCalendar(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, month string) (*dto.CalendarResponse, *errors.AppError)
	NextAvailabilitiesByEvent(ctx context.Context, userID uuid.UUID) ([]dto.UpcomingAvailabilityResponse, *errors.AppError)
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	repo repository.AvailabilityRepositoryInterface,
	events EventDirectory,
	publisher ChangePublisher,
	loc *time.Location,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:      repo,
		events:    events,
		publisher: publisher,
		resolver:  NewCommonSlotResolver(),
		loc:       loc,
		now:       time.Now,
	}
}

// AddAvailability normalizes the requested slot and creates or updates the
// (event, user, available_at) row. All-day slots land on midnight; timed
// slots keep their half-hour timestamp truncated to the minute.
func (s *AvailabilityService) AddAvailability(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.AddAvailabilityRequest) (*dto.SlotResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}

	event, appErr := s.loadEventForParticipant(ctx, eventID, userID)
	if appErr != nil {
		return nil, appErr
	}

	isAllDay := req.Time == dto.TimeTokenAllDay
	availableAt, err := s.normalizeAvailableAt(req.Date, req.Time)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Please choose a valid date and time.", err)
	}

	var location *string
	if req.AtMyPlace {
		myPlace := entity.LocationMyPlace
		location = &myPlace
	}

	slot := &entity.AvailabilitySlot{
		EventID:     eventID,
		UserID:      userID,
		AvailableAt: availableAt,
		IsAllDay:    isAllDay,
		Location:    location,
	}

	saved, err := s.repo.Upsert(ctx, slot)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to save availability", err)
	}

	s.announceChange(ctx, event, userID, req.Date, false)

	return dto.ToSlotResponse(saved), nil
}

// SetLocation updates the host flag for every slot the user holds on the
// given date.
func (s *AvailabilityService) SetLocation(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, req *dto.SetLocationRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := req.Validate(); appErr != nil {
		return appErr
	}

	event, appErr := s.loadEventForParticipant(ctx, eventID, userID)
	if appErr != nil {
		return appErr
	}

	var location *string
	if req.AtMyPlace {
		myPlace := entity.LocationMyPlace
		location = &myPlace
	}

	if err := s.repo.UpdateLocationByDate(ctx, eventID, userID, req.Date, location); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to update location", err)
	}

	s.announceChange(ctx, event, userID, req.Date, false)

	return nil
}

// RemoveAvailability deletes the user's slots on the given calendar date.
// The match is by date, deliberately coarser than the add path's exact
// timestamp key.
func (s *AvailabilityService) RemoveAvailability(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if !dto.ValidDate(date) {
		return errors.NewAppError(errors.ErrInvalidInput, "Please choose a date from the calendar.", nil)
	}

	event, appErr := s.loadEventForParticipant(ctx, eventID, userID)
	if appErr != nil {
		return appErr
	}

	if err := s.repo.DeleteByDate(ctx, eventID, userID, date); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to remove availability", err)
	}

	s.announceChange(ctx, event, userID, date, true)

	return nil
}

// GetEventCalendar returns the next common datetime plus the month view for
// the requested month (defaults to the current one).
func (s *AvailabilityService) GetEventCalendar(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, month string) (*dto.CalendarResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, appErr := s.loadEventForParticipant(ctx, eventID, userID)
	if appErr != nil {
		return nil, appErr
	}

	participants, err := s.events.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load participants", err)
	}

	participantIDs := make([]uuid.UUID, 0, len(participants))
	participantNames := make(map[uuid.UUID]string, len(participants))
	for _, p := range participants {
		participantIDs = append(participantIDs, p.UserID)
		participantNames[p.UserID] = p.Name
	}

	now := s.now().In(s.loc)

	allSlots, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load availability", err)
	}

	// Past slots are out of consideration for the resolver, even earlier today.
	futureSlots, err := s.repo.ListByEventFrom(ctx, eventID, startOfDay(now))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load availability", err)
	}

	nextCommonAt := s.resolver.NextCommonTime(now, participantIDs, futureSlots)
	monthStart := s.resolveMonthStart(now, month)
	days := BuildCalendarMonth(now, monthStart, len(participantIDs), allSlots, participantNames, userID)

	mySlots := make([]dto.SlotResponse, 0)
	for i := range allSlots {
		if allSlots[i].UserID == userID {
			mySlots = append(mySlots, *dto.ToSlotResponse(&allSlots[i]))
		}
	}
	sort.Slice(mySlots, func(i, j int) bool {
		return mySlots[i].AvailableAt.Before(mySlots[j].AvailableAt)
	})

	resp := &dto.CalendarResponse{
		EventID:          event.ID.String(),
		EventName:        event.Name,
		Month:            monthStart.Format("2006-01"),
		ParticipantCount: len(participantIDs),
		NextCommonAt:     nextCommonAt,
		Days:             make([]dto.CalendarDay, 0, len(days)),
		MySlots:          mySlots,
		TimeOptions:      TimeOptions(),
	}

	for _, day := range days {
		resp.Days = append(resp.Days, dto.CalendarDay(day))
	}

	return resp, nil
}

// NextAvailabilitiesByEvent returns the user's earliest upcoming slot per
// event, ordered soonest first.
func (s *AvailabilityService) NextAvailabilitiesByEvent(ctx context.Context, userID uuid.UUID) ([]dto.UpcomingAvailabilityResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	upcoming, err := s.repo.ListUpcomingByUser(ctx, userID, s.now().In(s.loc))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load upcoming availability", err)
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].AvailableAt.Before(upcoming[j].AvailableAt)
	})

	result := make([]dto.UpcomingAvailabilityResponse, 0, len(upcoming))
	for i := range upcoming {
		result = append(result, *dto.ToUpcomingResponse(&upcoming[i]))
	}

	return result, nil
}

func (s *AvailabilityService) loadEventForParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*evententity.Event, *errors.AppError) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	isMember, err := s.events.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if !isMember {
		return nil, errors.NewAppError(errors.ErrForbidden, "You are not a participant of this event", nil)
	}

	return event, nil
}

func (s *AvailabilityService) normalizeAvailableAt(date string, timeToken string) (time.Time, error) {
	if timeToken == dto.TimeTokenAllDay {
		return time.ParseInLocation("2006-01-02", date, s.loc)
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+timeToken, s.loc)
}

// resolveMonthStart parses the YYYY-MM month parameter, falling back to the
// current month.
func (s *AvailabilityService) resolveMonthStart(now time.Time, month string) time.Time {
	if dto.ValidMonth(month) {
		if parsed, err := time.ParseInLocation("2006-01", month, s.loc); err == nil {
			return parsed
		}
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
}

// announceChange notifies the other participants. Delivery failures are
// logged, never surfaced to the caller.
func (s *AvailabilityService) announceChange(ctx context.Context, event *evententity.Event, actorID uuid.UUID, date string, removed bool) {
	participants, err := s.events.GetParticipants(ctx, event.ID)
	if err != nil {
		logger.Warn("AvailabilityService:announceChange", "error", err, "event_id", event.ID)
		return
	}

	recipients := make([]uuid.UUID, 0, len(participants))
	actorName := ""
	for _, p := range participants {
		if p.UserID == actorID {
			actorName = p.Name
			continue
		}
		recipients = append(recipients, p.UserID)
	}

	if len(recipients) == 0 {
		return
	}

	payload := notifdto.AvailabilityChangedPayload{
		EventID:    event.ID,
		EventName:  event.Name,
		ActorID:    actorID,
		ActorName:  actorName,
		Date:       date,
		Removed:    removed,
		Recipients: recipients,
	}

	if err := s.publisher.PublishAvailabilityChanged(ctx, payload); err != nil {
		logger.Warn("AvailabilityService:announceChange:Publish", "error", err, "event_id", event.ID)
	}
}
