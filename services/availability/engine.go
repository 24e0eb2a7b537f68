package availability

import (
	"fmt"
	"time"

	"clinicdesk/models"

	"go.uber.org/zap"
)

// Engine makes bookability decisions over an already loaded profile. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	// Location is the clinic time zone used for calendar-day and weekday matching.
	Location *time.Location
	Logger   *zap.Logger
}

func NewEngine(loc *time.Location, logger *zap.Logger) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Location: loc, Logger: logger}
}

func (e *Engine) loc() *time.Location {
	if e == nil || e.Location == nil {
		return time.UTC
	}
	return e.Location
}

// SameDay compares calendar days in the clinic time zone.
func (e *Engine) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(e.loc()).Date()
	by, bm, bd := b.In(e.loc()).Date()
	return ay == by && am == bm && ad == bd
}

// HolidayOn returns the holiday covering candidate's calendar day, if any.
func (e *Engine) HolidayOn(profile *models.AvailabilityProfile, candidate time.Time) (*models.Holiday, bool) {
	if profile == nil {
		return nil, false
	}
	for i := range profile.Holidays {
		h := profile.Holidays[i]
		if h.Date.IsZero() {
			continue
		}
		if e.SameDay(h.Date, candidate) {
			return &h, true
		}
	}
	return nil, false
}

func (e *Engine) IsHoliday(profile *models.AvailabilityProfile, candidate time.Time) bool {
	_, ok := e.HolidayOn(profile, candidate)
	return ok
}

// DayFor returns the weekday entry that governs candidate.
func (e *Engine) DayFor(profile *models.AvailabilityProfile, candidate time.Time) (models.DayKey, models.DaySchedule) {
	key := models.DayKeyFor(candidate.In(e.loc()).Weekday())
	if profile == nil {
		return key, models.DaySchedule{}
	}
	return key, profile.Schedule.Day(key)
}

// IsBookable requires no holiday, an enabled day with valid hours, and a
// candidate time of day inside [start, end).
func (e *Engine) IsBookable(profile *models.AvailabilityProfile, candidate time.Time) bool {
	if profile == nil || e.IsHoliday(profile, candidate) {
		return false
	}
	_, day := e.DayFor(profile, candidate)
	if !day.HasHours() {
		return false
	}
	return day.Hours.Contains(models.TimeOfDayOf(candidate.In(e.loc())))
}

// NormalizeScheduleEdit turns a raw editor payload into a WeeklySchedule.
// Disabled days lose their range, enabled days with a missing or midnight
// endpoint keep no range, and only the first range of a day is kept.
func (e *Engine) NormalizeScheduleEdit(edit models.ScheduleEdit) (models.WeeklySchedule, error) {
	for key := range edit.Days {
		if !key.Valid() {
			return nil, &ValidationError{Field: "days." + string(key), Message: "unknown weekday"}
		}
	}

	schedule := models.NewWeeklySchedule()
	for _, key := range models.Days {
		in, ok := edit.Days[key]
		if !ok || !in.Enabled {
			continue
		}
		day := models.DaySchedule{Enabled: true}
		if len(in.Ranges) > 1 {
			e.logger().Debug("Dropping extra time ranges",
				zap.String("day", string(key)), zap.Int("dropped", len(in.Ranges)-1))
		}
		if len(in.Ranges) > 0 {
			hours, err := normalizeRange(key, in.Ranges[0])
			if err != nil {
				return nil, err
			}
			day.Hours = hours
		}
		schedule[key] = day
	}
	return schedule, nil
}

func (e *Engine) logger() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func normalizeRange(key models.DayKey, in models.TimeRangeInput) (*models.TimeRange, error) {
	field := fmt.Sprintf("days.%s.ranges[0]", key)
	if in.From == "" || in.To == "" {
		return nil, nil
	}
	start, err := models.ParseTimeOfDay(in.From)
	if err != nil {
		return nil, &ValidationError{Field: field + ".from", Message: err.Error()}
	}
	end, err := models.ParseTimeOfDay(in.To)
	if err != nil {
		return nil, &ValidationError{Field: field + ".to", Message: err.Error()}
	}
	// Midnight means "not set".
	if start == 0 || end == 0 {
		return nil, nil
	}
	if end <= start {
		return nil, &ValidationError{Field: field, Message: "end time must be after start time"}
	}
	return &models.TimeRange{Start: start, End: end}, nil
}

// FormatTimeRange renders a day for display.
func FormatTimeRange(day models.DaySchedule) string {
	if !day.HasHours() {
		return "Closed"
	}
	return day.Hours.Start.String() + " - " + day.Hours.End.String()
}
