package service

import (
	"testing"
	"time"

	"gatherly-api/modules/availability/entity"

	"github.com/google/uuid"
)

func timedSlot(userID uuid.UUID, at time.Time) entity.AvailabilitySlot {
	return entity.AvailabilitySlot{
		ID:          uuid.New(),
		EventID:     uuid.New(),
		UserID:      userID,
		AvailableAt: at,
	}
}

func allDaySlot(userID uuid.UUID, day time.Time) entity.AvailabilitySlot {
	slot := timedSlot(userID, day)
	slot.IsAllDay = true
	return slot
}

func mustEqualTime(t *testing.T, got *time.Time, want time.Time) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %v, got nil", want)
	}
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, *got)
	}
}

func TestNextCommonTimeNoParticipants(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	if got := resolver.NextCommonTime(now, nil, nil); got != nil {
		t.Fatalf("expected nil for empty participant set, got %v", *got)
	}
}

func TestNextCommonTimeNoSlots(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	participants := []uuid.UUID{uuid.New(), uuid.New()}

	if got := resolver.NextCommonTime(now, participants, nil); got != nil {
		t.Fatalf("expected nil when nobody has slots, got %v", *got)
	}
}

func TestNextCommonTimeAllDayCoversExact(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	alice := uuid.New()
	bob := uuid.New()

	tomorrow := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	slots := []entity.AvailabilitySlot{
		allDaySlot(alice, tomorrow),
		timedSlot(bob, tomorrow.Add(9*time.Hour)),
	}

	got := resolver.NextCommonTime(now, []uuid.UUID{alice, bob}, slots)
	mustEqualTime(t, got, tomorrow.Add(9*time.Hour))
}

func TestNextCommonTimeEarliestWins(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	alice := uuid.New()
	bob := uuid.New()

	early := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	slots := []entity.AvailabilitySlot{
		timedSlot(alice, early),
		timedSlot(bob, early),
		timedSlot(alice, late),
		timedSlot(bob, late),
	}

	got := resolver.NextCommonTime(now, []uuid.UUID{alice, bob}, slots)
	mustEqualTime(t, got, early)
}

func TestNextCommonTimeDisjointSlots(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	alice := uuid.New()
	bob := uuid.New()

	slots := []entity.AvailabilitySlot{
		timedSlot(alice, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)),
		timedSlot(bob, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)),
	}

	if got := resolver.NextCommonTime(now, []uuid.UUID{alice, bob}, slots); got != nil {
		t.Fatalf("expected nil for disjoint availability, got %v", *got)
	}
}

func TestNextCommonTimeExactMinutesDoNotBleed(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	alice := uuid.New()
	bob := uuid.New()

	t.Run("matching minute found", func(t *testing.T) {
		at := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)
		slots := []entity.AvailabilitySlot{
			timedSlot(alice, at),
			timedSlot(bob, at),
		}

		got := resolver.NextCommonTime(now, []uuid.UUID{alice, bob}, slots)
		mustEqualTime(t, got, at)
	})

	t.Run("adjacent half hours do not match", func(t *testing.T) {
		slots := []entity.AvailabilitySlot{
			timedSlot(alice, time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)),
			timedSlot(bob, time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC)),
		}

		if got := resolver.NextCommonTime(now, []uuid.UUID{alice, bob}, slots); got != nil {
			t.Fatalf("expected nil, a 14:00 slot must not cover 14:30, got %v", *got)
		}
	})
}

func TestNextCommonTimeHorizon(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	alice := uuid.New()
	bob := uuid.New()

	t.Run("slot just inside the horizon is found", func(t *testing.T) {
		day := now.AddDate(0, 0, 179)
		slots := []entity.AvailabilitySlot{
			allDaySlot(alice, day),
			allDaySlot(bob, day),
		}

		got := resolver.NextCommonTime(now, []uuid.UUID{alice, bob}, slots)
		mustEqualTime(t, got, day)
	})

	t.Run("slot beyond the horizon is not found", func(t *testing.T) {
		day := now.AddDate(0, 0, 181)
		slots := []entity.AvailabilitySlot{
			allDaySlot(alice, day),
			allDaySlot(bob, day),
		}

		if got := resolver.NextCommonTime(now, []uuid.UUID{alice, bob}, slots); got != nil {
			t.Fatalf("expected nil beyond the 180 day horizon, got %v", *got)
		}
	})
}

func TestNextCommonTimeRoundsUpToHalfHour(t *testing.T) {
	resolver := NewCommonSlotResolver()
	alice := uuid.New()

	t.Run("mid interval rounds up", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 9, 17, 42, 0, time.UTC)
		slots := []entity.AvailabilitySlot{
			allDaySlot(alice, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
		}

		got := resolver.NextCommonTime(now, []uuid.UUID{alice}, slots)
		mustEqualTime(t, got, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC))
	})

	t.Run("boundary stays put", func(t *testing.T) {
		now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
		slots := []entity.AvailabilitySlot{
			allDaySlot(alice, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
		}

		got := resolver.NextCommonTime(now, []uuid.UUID{alice}, slots)
		mustEqualTime(t, got, now)
	})
}

func TestNextCommonTimeIgnoresNonParticipants(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	alice := uuid.New()
	stranger := uuid.New()

	slots := []entity.AvailabilitySlot{
		allDaySlot(stranger, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)),
	}

	if got := resolver.NextCommonTime(now, []uuid.UUID{alice}, slots); got != nil {
		t.Fatalf("expected nil, a stranger's slot must not count, got %v", *got)
	}
}

func TestNextCommonTimeNormalizesSlotTimezone(t *testing.T) {
	resolver := NewCommonSlotResolver()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	alice := uuid.New()

	// Stored as 11:00 UTC+2, which is 09:00 in the scan location.
	offset := time.FixedZone("UTC+2", 2*60*60)
	slots := []entity.AvailabilitySlot{
		timedSlot(alice, time.Date(2026, 3, 3, 11, 0, 0, 0, offset)),
	}

	got := resolver.NextCommonTime(now, []uuid.UUID{alice}, slots)
	mustEqualTime(t, got, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))
}
