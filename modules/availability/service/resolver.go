package service

import (
	"time"

	"gatherly-api/modules/availability/entity"

	"github.com/google/uuid"
)

// Key layouts for the per-participant index.
const (
	dateKeyLayout   = "2006-01-02"
	minuteKeyLayout = "2006-01-02 15:04"
)

// CommonSlotResolver finds the next timestamp at which every participant of
// an event is available at once.
type CommonSlotResolver struct {
	// StepInterval between candidate timestamps - default 30 minutes
	StepInterval time.Duration
	// HorizonDays bounds the forward scan - default 180 days
	HorizonDays int
}

// NewCommonSlotResolver creates a resolver with default settings
func NewCommonSlotResolver() *CommonSlotResolver {
	return &CommonSlotResolver{
		StepInterval: 30 * time.Minute,
		HorizonDays:  180,
	}
}

// participantAvailability indexes one participant's slots: calendar dates
// covered all day and exact minute-aligned timestamps.
type participantAvailability struct {
	allDay map[string]bool
	exact  map[string]bool
}

// NextCommonTime scans forward from now in fixed steps and returns the first
// timestamp at which every participant has a covering slot, or nil when no
// such timestamp exists within the horizon. Rows from users outside the
// participant set are ignored; participants without rows stay in the index
// with empty sets, so coverage can never succeed for them.
func (r *CommonSlotResolver) NextCommonTime(now time.Time, participantIDs []uuid.UUID, slots []entity.AvailabilitySlot) *time.Time {
	if len(participantIDs) == 0 {
		return nil
	}

	index := r.buildIndex(now.Location(), participantIDs, slots)

	candidate := r.roundUpToStep(now)
	steps := r.HorizonDays * int(24*time.Hour/r.StepInterval)

	for i := 0; i < steps; i++ {
		candidateDate := candidate.Format(dateKeyLayout)
		candidateMinute := candidate.Format(minuteKeyLayout)

		everyoneAvailable := true
		for _, participantID := range participantIDs {
			slots := index[participantID]
			if !slots.exact[candidateMinute] && !slots.allDay[candidateDate] {
				everyoneAvailable = false
				break
			}
		}

		if everyoneAvailable {
			found := candidate
			return &found
		}

		candidate = candidate.Add(r.StepInterval)
	}

	return nil
}

// buildIndex builds the per-participant availability index in the given
// location.
func (r *CommonSlotResolver) buildIndex(loc *time.Location, participantIDs []uuid.UUID, slots []entity.AvailabilitySlot) map[uuid.UUID]*participantAvailability {
	index := make(map[uuid.UUID]*participantAvailability, len(participantIDs))

	for _, participantID := range participantIDs {
		index[participantID] = &participantAvailability{
			allDay: map[string]bool{},
			exact:  map[string]bool{},
		}
	}

	for _, slot := range slots {
		entry, ok := index[slot.UserID]
		if !ok {
			continue
		}

		availableAt := slot.AvailableAt.In(loc)
		if slot.IsAllDay {
			entry.allDay[availableAt.Format(dateKeyLayout)] = true
			continue
		}

		entry.exact[availableAt.Format(minuteKeyLayout)] = true
	}

	return index
}

// roundUpToStep truncates to the minute and rounds up to the next step
// boundary. A timestamp already on a boundary is kept as-is.
func (r *CommonSlotResolver) roundUpToStep(t time.Time) time.Time {
	t = t.Truncate(time.Minute)

	step := int(r.StepInterval / time.Minute)
	if rem := t.Minute() % step; rem != 0 {
		t = t.Add(time.Duration(step-rem) * time.Minute)
	}

	return t
}
