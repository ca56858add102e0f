package service

import (
	"context"
	"testing"
	"time"

	"gatherly-api/core/errors"
	"gatherly-api/modules/availability/dto"
	"gatherly-api/modules/availability/entity"
	evententity "gatherly-api/modules/event/entity"
	notifdto "gatherly-api/modules/notification/dto"

	"github.com/google/uuid"
)

type fakeAvailabilityRepo struct {
	slots    []entity.AvailabilitySlot
	upcoming []entity.UpcomingAvailability

	upserted      []entity.AvailabilitySlot
	locationDates []string
	deletedDates  []string
}

func (f *fakeAvailabilityRepo) Upsert(ctx context.Context, slot *entity.AvailabilitySlot) (*entity.AvailabilitySlot, error) {
	saved := *slot
	saved.ID = uuid.New()
	f.upserted = append(f.upserted, saved)
	f.slots = append(f.slots, saved)
	return &saved, nil
}

func (f *fakeAvailabilityRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	return f.slots, nil
}

func (f *fakeAvailabilityRepo) ListByEventFrom(ctx context.Context, eventID uuid.UUID, from time.Time) ([]entity.AvailabilitySlot, error) {
	var future []entity.AvailabilitySlot
	for _, slot := range f.slots {
		if !slot.AvailableAt.Before(from) {
			future = append(future, slot)
		}
	}
	return future, nil
}

func (f *fakeAvailabilityRepo) ListUserSlots(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	var mine []entity.AvailabilitySlot
	for _, slot := range f.slots {
		if slot.UserID == userID {
			mine = append(mine, slot)
		}
	}
	return mine, nil
}

func (f *fakeAvailabilityRepo) UpdateLocationByDate(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string, location *string) error {
	f.locationDates = append(f.locationDates, date)
	for i := range f.slots {
		if f.slots[i].UserID == userID && f.slots[i].AvailableAt.Format("2006-01-02") == date {
			f.slots[i].Location = location
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) DeleteByDate(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string) error {
	f.deletedDates = append(f.deletedDates, date)
	var kept []entity.AvailabilitySlot
	for _, slot := range f.slots {
		if slot.UserID == userID && slot.AvailableAt.Format("2006-01-02") == date {
			continue
		}
		kept = append(kept, slot)
	}
	f.slots = kept
	return nil
}

func (f *fakeAvailabilityRepo) ListUpcomingByUser(ctx context.Context, userID uuid.UUID, from time.Time) ([]entity.UpcomingAvailability, error) {
	return f.upcoming, nil
}

type fakeEventDirectory struct {
	event        *evententity.Event
	participants []evententity.Participant
}

func (f *fakeEventDirectory) GetByID(ctx context.Context, id uuid.UUID) (*evententity.Event, error) {
	if f.event != nil && f.event.ID == id {
		return f.event, nil
	}
	return nil, nil
}

func (f *fakeEventDirectory) GetParticipants(ctx context.Context, eventID uuid.UUID) ([]evententity.Participant, error) {
	return f.participants, nil
}

func (f *fakeEventDirectory) IsParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	for _, p := range f.participants {
		if p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakePublisher struct {
	published []notifdto.AvailabilityChangedPayload
}

func (f *fakePublisher) PublishAvailabilityChanged(ctx context.Context, payload notifdto.AvailabilityChangedPayload) error {
	f.published = append(f.published, payload)
	return nil
}

type availabilityFixture struct {
	svc       *AvailabilityService
	repo      *fakeAvailabilityRepo
	events    *fakeEventDirectory
	publisher *fakePublisher
	eventID   uuid.UUID
	alice     uuid.UUID
	bob       uuid.UUID
}

func newAvailabilityFixture(t *testing.T, now time.Time) *availabilityFixture {
	t.Helper()

	alice := uuid.New()
	bob := uuid.New()
	eventID := uuid.New()

	events := &fakeEventDirectory{
		event: &evententity.Event{ID: eventID, Name: "Game night"},
		participants: []evententity.Participant{
			{UserID: alice, Name: "Alice"},
			{UserID: bob, Name: "Bob"},
		},
	}
	repo := &fakeAvailabilityRepo{}
	publisher := &fakePublisher{}

	svc := NewAvailabilityService(repo, events, publisher, time.UTC).(*AvailabilityService)
	svc.now = func() time.Time { return now }

	return &availabilityFixture{
		svc:       svc,
		repo:      repo,
		events:    events,
		publisher: publisher,
		eventID:   eventID,
		alice:     alice,
		bob:       bob,
	}
}

func TestAddAvailabilityAllDayLandsOnMidnight(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	resp, appErr := fx.svc.AddAvailability(context.Background(), fx.eventID, fx.alice, &dto.AddAvailabilityRequest{
		Date: "2026-03-10",
		Time: "all-day",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !resp.AvailableAt.Equal(want) {
		t.Fatalf("expected all-day slot at %v, got %v", want, resp.AvailableAt)
	}
	if !resp.IsAllDay {
		t.Fatal("expected the slot to be flagged all-day")
	}
}

func TestAddAvailabilityTimedSlot(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	resp, appErr := fx.svc.AddAvailability(context.Background(), fx.eventID, fx.alice, &dto.AddAvailabilityRequest{
		Date:      "2026-03-10",
		Time:      "09:30",
		AtMyPlace: true,
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	want := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	if !resp.AvailableAt.Equal(want) {
		t.Fatalf("expected slot at %v, got %v", want, resp.AvailableAt)
	}
	if resp.IsAllDay {
		t.Fatal("a timed slot must not be all-day")
	}
	if resp.Location == nil || *resp.Location != entity.LocationMyPlace {
		t.Fatalf("expected location %q, got %v", entity.LocationMyPlace, resp.Location)
	}
}

func TestAddAvailabilityRejectsBadTimeToken(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	_, appErr := fx.svc.AddAvailability(context.Background(), fx.eventID, fx.alice, &dto.AddAvailabilityRequest{
		Date: "2026-03-10",
		Time: "09:15",
	})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid input for a non half-hour time, got %v", appErr)
	}
}

func TestAddAvailabilityRejectsNonParticipant(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	stranger := uuid.New()

	_, appErr := fx.svc.AddAvailability(context.Background(), fx.eventID, stranger, &dto.AddAvailabilityRequest{
		Date: "2026-03-10",
		Time: "09:30",
	})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected forbidden for a non-participant, got %v", appErr)
	}
}

// Adding twice on the same date with different times creates two rows, yet a
// single removal by date clears both. The write key is the exact timestamp
// while the delete key is the calendar date.
func TestRemoveAvailabilityDeletesWholeDate(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, token := range []string{"09:00", "18:30"} {
		if _, appErr := fx.svc.AddAvailability(ctx, fx.eventID, fx.alice, &dto.AddAvailabilityRequest{
			Date: "2026-03-10",
			Time: token,
		}); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
	}
	if _, appErr := fx.svc.AddAvailability(ctx, fx.eventID, fx.alice, &dto.AddAvailabilityRequest{
		Date: "2026-03-11",
		Time: "09:00",
	}); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(fx.repo.slots) != 3 {
		t.Fatalf("expected 3 rows before removal, got %d", len(fx.repo.slots))
	}

	if appErr := fx.svc.RemoveAvailability(ctx, fx.eventID, fx.alice, "2026-03-10"); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(fx.repo.deletedDates) != 1 || fx.repo.deletedDates[0] != "2026-03-10" {
		t.Fatalf("expected one delete keyed on the date, got %v", fx.repo.deletedDates)
	}
	if len(fx.repo.slots) != 1 {
		t.Fatalf("expected both slots on the date gone, %d rows remain", len(fx.repo.slots))
	}
	if fx.repo.slots[0].AvailableAt.Day() != 11 {
		t.Fatalf("expected only the other date to survive, got %v", fx.repo.slots[0].AvailableAt)
	}
}

func TestRemoveAvailabilityRejectsBadDate(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	appErr := fx.svc.RemoveAvailability(context.Background(), fx.eventID, fx.alice, "10-03-2026")
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid input for a malformed date, got %v", appErr)
	}
}

func TestSetLocationUpdatesEverySlotOnDate(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, token := range []string{"09:00", "18:30"} {
		if _, appErr := fx.svc.AddAvailability(ctx, fx.eventID, fx.alice, &dto.AddAvailabilityRequest{
			Date: "2026-03-10",
			Time: token,
		}); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr)
		}
	}

	if appErr := fx.svc.SetLocation(ctx, fx.eventID, fx.alice, &dto.SetLocationRequest{
		Date:      "2026-03-10",
		AtMyPlace: true,
	}); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(fx.repo.locationDates) != 1 || fx.repo.locationDates[0] != "2026-03-10" {
		t.Fatalf("expected one location update keyed on the date, got %v", fx.repo.locationDates)
	}
	for _, slot := range fx.repo.slots {
		if slot.Location == nil || *slot.Location != entity.LocationMyPlace {
			t.Fatalf("expected every slot on the date to host, got %+v", slot)
		}
	}
}

func TestAddAvailabilityNotifiesOtherParticipants(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	if _, appErr := fx.svc.AddAvailability(context.Background(), fx.eventID, fx.alice, &dto.AddAvailabilityRequest{
		Date: "2026-03-10",
		Time: "09:30",
	}); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(fx.publisher.published) != 1 {
		t.Fatalf("expected one published change, got %d", len(fx.publisher.published))
	}

	payload := fx.publisher.published[0]
	if payload.ActorID != fx.alice || payload.ActorName != "Alice" {
		t.Fatalf("unexpected actor: %+v", payload)
	}
	if len(payload.Recipients) != 1 || payload.Recipients[0] != fx.bob {
		t.Fatalf("expected only the other participant as recipient, got %v", payload.Recipients)
	}
}

func TestGetEventCalendarSkipsPastSlots(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	fx := newAvailabilityFixture(t, now)

	yesterday := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	upcoming := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	fx.repo.slots = []entity.AvailabilitySlot{
		{ID: uuid.New(), EventID: fx.eventID, UserID: fx.alice, AvailableAt: yesterday},
		{ID: uuid.New(), EventID: fx.eventID, UserID: fx.bob, AvailableAt: yesterday},
		{ID: uuid.New(), EventID: fx.eventID, UserID: fx.alice, AvailableAt: upcoming},
		{ID: uuid.New(), EventID: fx.eventID, UserID: fx.bob, AvailableAt: upcoming},
	}

	resp, appErr := fx.svc.GetEventCalendar(context.Background(), fx.eventID, fx.alice, "")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if resp.Month != "2026-03" {
		t.Fatalf("expected the current month by default, got %s", resp.Month)
	}
	if resp.ParticipantCount != 2 {
		t.Fatalf("expected 2 participants, got %d", resp.ParticipantCount)
	}
	if resp.NextCommonAt == nil || !resp.NextCommonAt.Equal(upcoming) {
		t.Fatalf("expected next common time %v, got %v", upcoming, resp.NextCommonAt)
	}

	// The month grid still shows the past slots.
	for _, day := range resp.Days {
		if day.Date == "2026-03-01" && day.AttendeeCount != 2 {
			t.Fatalf("expected past slots on the grid, got %d attendees", day.AttendeeCount)
		}
	}

	if len(resp.MySlots) != 2 {
		t.Fatalf("expected the caller's 2 slots, got %d", len(resp.MySlots))
	}
	if len(resp.TimeOptions) != 49 {
		t.Fatalf("expected 49 time options, got %d", len(resp.TimeOptions))
	}
}

func TestGetEventCalendarExplicitMonth(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	resp, appErr := fx.svc.GetEventCalendar(context.Background(), fx.eventID, fx.alice, "2026-05")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if resp.Month != "2026-05" {
		t.Fatalf("expected the requested month, got %s", resp.Month)
	}
	if resp.Days[0].Date != "2026-04-27" {
		t.Fatalf("expected May 2026 to open on Monday April 27, got %s", resp.Days[0].Date)
	}
}

func TestNextAvailabilitiesSortedBySoonest(t *testing.T) {
	fx := newAvailabilityFixture(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	fx.repo.upcoming = []entity.UpcomingAvailability{
		{EventID: uuid.New(), EventName: "Later", AvailableAt: time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)},
		{EventID: uuid.New(), EventName: "Sooner", AvailableAt: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)},
	}

	result, appErr := fx.svc.NextAvailabilitiesByEvent(context.Background(), fx.alice)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result))
	}
	if result[0].EventName != "Sooner" || result[1].EventName != "Later" {
		t.Fatalf("expected soonest first, got %s then %s", result[0].EventName, result[1].EventName)
	}
}
