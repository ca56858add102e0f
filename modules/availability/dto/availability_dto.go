package dto

import (
	"regexp"
	"time"

	"gatherly-api/core/errors"
	"gatherly-api/modules/availability/entity"
)

// TimeTokenAllDay is the time token marking an all-day slot.
const TimeTokenAllDay = "all-day"

var (
	datePattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeTokenPattern = regexp.MustCompile(`^(all-day|([01]\d|2[0-3]):(00|30))$`)
	monthPattern     = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// ValidDate reports whether the value is a well-formed YYYY-MM-DD date.
func ValidDate(value string) bool {
	if !datePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// ValidTimeToken reports whether the value is "all-day" or a half-hour
// aligned HH:MM time.
func ValidTimeToken(value string) bool {
	return timeTokenPattern.MatchString(value)
}

// ValidMonth reports whether the value is a well-formed YYYY-MM month.
func ValidMonth(value string) bool {
	return monthPattern.MatchString(value)
}

type AddAvailabilityRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	AtMyPlace bool   `json:"at_my_place"`
}

func (r *AddAvailabilityRequest) Validate() *errors.AppError {
	if !ValidDate(r.Date) {
		return errors.NewAppError(errors.ErrInvalidInput, "Please choose a date from the calendar.", nil)
	}
	if !ValidTimeToken(r.Time) {
		return errors.NewAppError(errors.ErrInvalidInput, "Please choose a valid time or all day.", nil)
	}
	return nil
}

type SetLocationRequest struct {
	Date      string `json:"date"`
	AtMyPlace bool   `json:"at_my_place"`
}

func (r *SetLocationRequest) Validate() *errors.AppError {
	if !ValidDate(r.Date) {
		return errors.NewAppError(errors.ErrInvalidInput, "Please choose a date from the calendar.", nil)
	}
	return nil
}

type SlotResponse struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	AvailableAt time.Time `json:"available_at"`
	IsAllDay    bool      `json:"is_all_day"`
	Location    *string   `json:"location,omitempty"`
}

func ToSlotResponse(slot *entity.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:          slot.ID.String(),
		EventID:     slot.EventID.String(),
		AvailableAt: slot.AvailableAt,
		IsAllDay:    slot.IsAllDay,
		Location:    slot.Location,
	}
}

type CalendarResponse struct {
	EventID          string         `json:"event_id"`
	EventName        string         `json:"event_name"`
	Month            string         `json:"month"`
	ParticipantCount int            `json:"participant_count"`
	NextCommonAt     *time.Time     `json:"next_common_at,omitempty"`
	Days             []CalendarDay  `json:"days"`
	MySlots          []SlotResponse `json:"my_slots"`
	TimeOptions      []string       `json:"time_options"`
}

// CalendarDay mirrors service.CalendarDay for the response payload.
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

type UpcomingAvailabilityResponse struct {
	EventID     string    `json:"event_id"`
	EventName   string    `json:"event_name"`
	EventColor  string    `json:"event_color"`
	AvailableAt time.Time `json:"available_at"`
	IsAllDay    bool      `json:"is_all_day"`
	Location    *string   `json:"location,omitempty"`
}

func ToUpcomingResponse(upcoming *entity.UpcomingAvailability) *UpcomingAvailabilityResponse {
	return &UpcomingAvailabilityResponse{
		EventID:     upcoming.EventID.String(),
		EventName:   upcoming.EventName,
		EventColor:  upcoming.EventColor,
		AvailableAt: upcoming.AvailableAt,
		IsAllDay:    upcoming.IsAllDay,
		Location:    upcoming.Location,
	}
}
