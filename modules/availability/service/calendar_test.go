package service

import (
	"testing"
	"time"

	"gatherly-api/modules/availability/entity"

	"github.com/google/uuid"
)

func findDay(t *testing.T, days []CalendarDay, date string) CalendarDay {
	t.Helper()
	for _, day := range days {
		if day.Date == date {
			return day
		}
	}
	t.Fatalf("day %s not in calendar", date)
	return CalendarDay{}
}

func TestBuildCalendarMonthCommonDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()
	names := map[uuid.UUID]string{alice: "Alice", bob: "Bob", carol: "Carol"}

	fifteenth := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	sixteenth := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	slots := []entity.AvailabilitySlot{
		allDaySlot(alice, fifteenth),
		timedSlot(bob, fifteenth.Add(18*time.Hour)),
		timedSlot(carol, fifteenth.Add(19*time.Hour)),
		allDaySlot(alice, sixteenth),
		timedSlot(bob, sixteenth.Add(18*time.Hour)),
	}

	days := BuildCalendarMonth(now, monthStart, 3, slots, names, alice)

	full := findDay(t, days, "2026-03-15")
	if full.AttendeeCount != 3 {
		t.Fatalf("expected 3 attendees on the 15th, got %d", full.AttendeeCount)
	}
	if !full.IsCommonDay {
		t.Fatal("expected the 15th to be a common day")
	}

	partial := findDay(t, days, "2026-03-16")
	if partial.AttendeeCount != 2 {
		t.Fatalf("expected 2 attendees on the 16th, got %d", partial.AttendeeCount)
	}
	if partial.IsCommonDay {
		t.Fatal("the 16th is missing a participant, it must not be common")
	}
}

func TestBuildCalendarMonthPadsToFullWeeks(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	days := BuildCalendarMonth(now, monthStart, 0, nil, nil, uuid.New())

	if len(days)%7 != 0 {
		t.Fatalf("calendar length %d is not a multiple of 7", len(days))
	}

	// March 2026 starts on a Sunday, so the grid reaches back to Monday the
	// 23rd of February.
	if days[0].Date != "2026-02-23" {
		t.Fatalf("expected grid to start on 2026-02-23, got %s", days[0].Date)
	}
	if days[0].InCurrentMonth {
		t.Fatal("padding day must not be flagged as in the current month")
	}
	if days[len(days)-1].Date != "2026-04-05" {
		t.Fatalf("expected grid to end on 2026-04-05, got %s", days[len(days)-1].Date)
	}

	first := findDay(t, days, "2026-03-01")
	if !first.InCurrentMonth {
		t.Fatal("the 1st must be flagged as in the current month")
	}

	today := findDay(t, days, "2026-03-02")
	if !today.IsToday {
		t.Fatal("expected the 2nd to be flagged as today")
	}
}

func TestBuildCalendarMonthCountsUsersOnce(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	alice := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	slots := []entity.AvailabilitySlot{
		timedSlot(alice, day.Add(9*time.Hour)),
		timedSlot(alice, day.Add(14*time.Hour)),
		allDaySlot(alice, day),
	}

	days := BuildCalendarMonth(now, monthStart, 2, slots, nil, alice)

	tenth := findDay(t, days, "2026-03-10")
	if tenth.AttendeeCount != 1 {
		t.Fatalf("expected one distinct attendee, got %d", tenth.AttendeeCount)
	}
	if !tenth.HasMyAvailability {
		t.Fatal("expected the user's own slots to be flagged")
	}
	if tenth.IsCommonDay {
		t.Fatal("one of two participants must not make a common day")
	}
}

func TestBuildCalendarMonthHostNames(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	alice := uuid.New()
	bob := uuid.New()
	names := map[uuid.UUID]string{alice: "Alice", bob: "Bob"}

	myPlace := entity.LocationMyPlace
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	slots := []entity.AvailabilitySlot{
		{UserID: bob, AvailableAt: day.Add(9 * time.Hour), Location: &myPlace},
		{UserID: bob, AvailableAt: day.Add(14 * time.Hour), Location: &myPlace},
		{UserID: alice, AvailableAt: day.Add(9 * time.Hour), Location: &myPlace},
		{UserID: alice, AvailableAt: day.Add(20 * time.Hour)},
	}

	days := BuildCalendarMonth(now, monthStart, 2, slots, names, alice)

	tenth := findDay(t, days, "2026-03-10")
	if len(tenth.HostNames) != 2 {
		t.Fatalf("expected 2 host names, got %v", tenth.HostNames)
	}
	if tenth.HostNames[0] != "Alice" || tenth.HostNames[1] != "Bob" {
		t.Fatalf("expected sorted deduplicated hosts, got %v", tenth.HostNames)
	}
}

func TestTimeOptions(t *testing.T) {
	options := TimeOptions()

	if len(options) != 49 {
		t.Fatalf("expected 49 options, got %d", len(options))
	}
	if options[0] != "all-day" {
		t.Fatalf("expected the first option to be all-day, got %s", options[0])
	}
	if options[1] != "00:00" {
		t.Fatalf("expected 00:00 after all-day, got %s", options[1])
	}
	if options[2] != "00:30" {
		t.Fatalf("expected 00:30 third, got %s", options[2])
	}
	if options[len(options)-1] != "23:30" {
		t.Fatalf("expected the last option to be 23:30, got %s", options[len(options)-1])
	}
}
