package service

import (
	"fmt"
	"sort"
	"time"

	"gatherly-api/modules/availability/entity"

	"github.com/google/uuid"
)

// CalendarDay is one cell of the month view.
type CalendarDay struct {
	Date              string   `json:"date"`
	Label             string   `json:"label"`
	Day               int      `json:"day"`
	InCurrentMonth    bool     `json:"in_current_month"`
	AttendeeCount     int      `json:"attendee_count"`
	HostNames         []string `json:"host_names"`
	HasMyAvailability bool     `json:"has_my_availability"`
	IsCommonDay       bool     `json:"is_common_day"`
	IsToday           bool     `json:"is_today"`
}

// BuildCalendarMonth projects the event's availability rows onto the month
// containing monthStart, padded to full Monday-to-Sunday weeks. Attendee
// counts are distinct per participant; a day is common when every participant
// has a covering slot on it.
func BuildCalendarMonth(
	now time.Time,
	monthStart time.Time,
	participantCount int,
	slots []entity.AvailabilitySlot,
	participantNames map[uuid.UUID]string,
	userID uuid.UUID,
) []CalendarDay {
	loc := monthStart.Location()
	normalized := make([]entity.AvailabilitySlot, len(slots))
	for i, slot := range slots {
		slot.AvailableAt = slot.AvailableAt.In(loc)
		normalized[i] = slot
	}

	attendeesByDate := attendeesByDate(normalized)
	hostsByDate := hostNamesByDate(normalized, participantNames)
	myDates := datesWithUserSlot(normalized, userID)

	monthEnd := monthStart.AddDate(0, 1, -1)
	calendarStart := startOfWeek(monthStart)
	calendarEnd := endOfWeek(monthEnd)
	today := now.Format(dateKeyLayout)

	var days []CalendarDay
	for date := calendarStart; !date.After(calendarEnd); date = date.AddDate(0, 0, 1) {
		dateString := date.Format(dateKeyLayout)
		attendeeCount := len(attendeesByDate[dateString])

		days = append(days, CalendarDay{
			Date:              dateString,
			Label:             date.Format("Mon, Jan 2"),
			Day:               date.Day(),
			InCurrentMonth:    date.Month() == monthStart.Month(),
			AttendeeCount:     attendeeCount,
			HostNames:         hostsByDate[dateString],
			HasMyAvailability: myDates[dateString],
			IsCommonDay:       participantCount > 0 && attendeeCount == participantCount,
			IsToday:           dateString == today,
		})
	}

	return days
}

// TimeOptions lists the selectable time tokens: all-day plus every
// half-hour of the day.
func TimeOptions() []string {
	options := make([]string, 0, 49)
	options = append(options, "all-day")

	for index := 0; index < 48; index++ {
		hours := index / 2
		minutes := "00"
		if index%2 == 1 {
			minutes = "30"
		}
		options = append(options, fmt.Sprintf("%02d:%s", hours, minutes))
	}

	return options
}

// attendeesByDate groups slots by calendar date, deduplicated by user.
func attendeesByDate(slots []entity.AvailabilitySlot) map[string]map[uuid.UUID]bool {
	byDate := map[string]map[uuid.UUID]bool{}

	for _, slot := range slots {
		dateString := slot.AvailableAt.Format(dateKeyLayout)
		if byDate[dateString] == nil {
			byDate[dateString] = map[uuid.UUID]bool{}
		}
		byDate[dateString][slot.UserID] = true
	}

	return byDate
}

// hostNamesByDate lists, per date, the names of users who flagged they can
// host at their place. Names are deduplicated and sorted for stable output.
func hostNamesByDate(slots []entity.AvailabilitySlot, participantNames map[uuid.UUID]string) map[string][]string {
	seen := map[string]map[string]bool{}
	byDate := map[string][]string{}

	for _, slot := range slots {
		if !slot.AtMyPlace() {
			continue
		}

		name, ok := participantNames[slot.UserID]
		if !ok {
			continue
		}

		dateString := slot.AvailableAt.Format(dateKeyLayout)
		if seen[dateString] == nil {
			seen[dateString] = map[string]bool{}
		}
		if seen[dateString][name] {
			continue
		}

		seen[dateString][name] = true
		byDate[dateString] = append(byDate[dateString], name)
	}

	for dateString := range byDate {
		sort.Strings(byDate[dateString])
	}

	return byDate
}

func datesWithUserSlot(slots []entity.AvailabilitySlot, userID uuid.UUID) map[string]bool {
	dates := map[string]bool{}
	for _, slot := range slots {
		if slot.UserID == userID {
			dates[slot.AvailableAt.Format(dateKeyLayout)] = true
		}
	}
	return dates
}

// startOfWeek returns the Monday on or before the given day.
func startOfWeek(t time.Time) time.Time {
	t = startOfDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// endOfWeek returns the Sunday on or after the given day.
func endOfWeek(t time.Time) time.Time {
	t = startOfDay(t)
	offset := (7 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, offset)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
