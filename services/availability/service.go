package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinicdesk/models"
	"clinicdesk/services/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService is the doctor's schedule-edit workflow.
type ScheduleService interface {
	GetSchedule(ctx context.Context, doctorUserID string) (*ScheduleView, error)
	SaveSchedule(ctx context.Context, doctorUserID string, edit models.ScheduleEdit) (*ScheduleView, error)
	AddHoliday(ctx context.Context, doctorUserID string, in models.HolidayInput) (*models.Holiday, error)
	RemoveHoliday(ctx context.Context, doctorUserID, holidayID string) error
	CheckAvailability(ctx context.Context, doctorUserID string, at time.Time) (*AvailabilityCheck, error)
}

// ScheduleView is a profile plus per-day display labels.
type ScheduleView struct {
	DoctorID     string           `json:"doctorId"`
	DoctorUserID string           `json:"doctorUserId"`
	Days         []DayView        `json:"days"`
	Holidays     []models.Holiday `json:"holidays"`
}

type DayView struct {
	Day     models.DayKey     `json:"day"`
	Label   string            `json:"label"`
	Enabled bool              `json:"enabled"`
	Hours   *models.TimeRange `json:"hours,omitempty"`
	Display string            `json:"display"` // "09:00 - 17:00" or "Closed"
}

// AvailabilityCheck answers "can this doctor be booked at this time?".
type AvailabilityCheck struct {
	At        time.Time       `json:"at"`
	Day       string          `json:"day"`
	Hours     string          `json:"hours"`
	IsHoliday bool            `json:"isHoliday"`
	Holiday   *models.Holiday `json:"holiday,omitempty"`
	Bookable  bool            `json:"bookable"`
}

// DefaultScheduleService implements ScheduleService. Writes fail closed:
// any load or save error is returned to the caller.
type DefaultScheduleService struct {
	Store  ScheduleStore
	Engine *Engine
	Events events.Publisher
	Logger *zap.Logger
}

func (s *DefaultScheduleService) GetSchedule(ctx context.Context, doctorUserID string) (*ScheduleView, error) {
	profile, err := s.Store.LoadProfile(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	return NewScheduleView(profile), nil
}

// SaveSchedule replaces the weekly schedule. Holidays are replaced only when
// the edit carries a holiday list; a nil list keeps the stored holidays.
func (s *DefaultScheduleService) SaveSchedule(ctx context.Context, doctorUserID string, edit models.ScheduleEdit) (*ScheduleView, error) {
	schedule, err := s.Engine.NormalizeScheduleEdit(edit)
	if err != nil {
		return nil, err
	}

	var holidays []models.Holiday
	if edit.Holidays != nil {
		holidays, err = s.parseHolidays(edit.Holidays)
		if err != nil {
			return nil, err
		}
	}

	profile, err := s.Store.LoadProfile(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	profile.Schedule = schedule
	if edit.Holidays != nil {
		profile.Holidays = holidays
	}

	if err := s.save(ctx, doctorUserID, profile); err != nil {
		return nil, err
	}
	return NewScheduleView(profile), nil
}

// AddHoliday validates the input before touching the store.
func (s *DefaultScheduleService) AddHoliday(ctx context.Context, doctorUserID string, in models.HolidayInput) (*models.Holiday, error) {
	holiday, err := s.parseHoliday("holiday", in)
	if err != nil {
		return nil, err
	}

	profile, err := s.Store.LoadProfile(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	for _, h := range profile.Holidays {
		if h.ID == holiday.ID {
			return nil, &ValidationError{Field: "holiday.id", Message: "a holiday with this id already exists"}
		}
	}
	profile.Holidays = append(profile.Holidays, holiday)

	if err := s.save(ctx, doctorUserID, profile); err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (s *DefaultScheduleService) RemoveHoliday(ctx context.Context, doctorUserID, holidayID string) error {
	profile, err := s.Store.LoadProfile(ctx, doctorUserID)
	if err != nil {
		return err
	}

	kept := make([]models.Holiday, 0, len(profile.Holidays))
	for _, h := range profile.Holidays {
		if h.ID != holidayID {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(profile.Holidays) {
		return ErrHolidayNotFound
	}
	profile.Holidays = kept
	return s.save(ctx, doctorUserID, profile)
}

func (s *DefaultScheduleService) CheckAvailability(ctx context.Context, doctorUserID string, at time.Time) (*AvailabilityCheck, error) {
	profile, err := s.Store.LoadProfile(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	key, day := s.Engine.DayFor(profile, at)
	holiday, isHoliday := s.Engine.HolidayOn(profile, at)
	return &AvailabilityCheck{
		At:        at,
		Day:       key.Label(),
		Hours:     FormatTimeRange(day),
		IsHoliday: isHoliday,
		Holiday:   holiday,
		Bookable:  s.Engine.IsBookable(profile, at),
	}, nil
}

func (s *DefaultScheduleService) save(ctx context.Context, doctorUserID string, profile *models.AvailabilityProfile) error {
	if err := s.Store.SaveProfile(ctx, doctorUserID, profile); err != nil {
		s.logger().Error("Failed to save schedule", zap.String("doctorUserId", doctorUserID), zap.Error(err))
		return err
	}
	if s.Events != nil {
		evt := events.NewEvent(events.ResourceSchedule, events.ActionUpdated, profile.DoctorID, doctorUserID)
		if err := s.Events.Publish(ctx, evt); err != nil {
			s.logger().Warn("Failed to publish schedule event", zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultScheduleService) parseHolidays(inputs []models.HolidayInput) ([]models.Holiday, error) {
	holidays := make([]models.Holiday, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		h, err := s.parseHoliday(fmt.Sprintf("holidays[%d]", i), in)
		if err != nil {
			return nil, err
		}
		if seen[h.ID] {
			return nil, &ValidationError{Field: fmt.Sprintf("holidays[%d].id", i), Message: "duplicate holiday id"}
		}
		seen[h.ID] = true
		holidays = append(holidays, h)
	}
	return holidays, nil
}

// parseHoliday requires a date and a non-blank reason. The date is stored as
// midnight of that calendar day in the clinic time zone.
func (s *DefaultScheduleService) parseHoliday(field string, in models.HolidayInput) (models.Holiday, error) {
	reason := strings.TrimSpace(in.Reason)
	if strings.TrimSpace(in.Date) == "" {
		return models.Holiday{}, &ValidationError{Field: field + ".date", Message: "date is required"}
	}
	if reason == "" {
		return models.Holiday{}, &ValidationError{Field: field + ".reason", Message: "reason is required"}
	}
	date, err := s.parseDate(in.Date)
	if err != nil {
		return models.Holiday{}, &ValidationError{Field: field + ".date", Message: err.Error()}
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = "holiday-" + uuid.NewString()
	}
	return models.Holiday{ID: id, Date: date, Reason: reason}, nil
}

func (s *DefaultScheduleService) parseDate(raw string) (time.Time, error) {
	loc := s.Engine.loc()
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD or RFC 3339")
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

func (s *DefaultScheduleService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// NewScheduleView renders a profile for the schedule screen.
func NewScheduleView(profile *models.AvailabilityProfile) *ScheduleView {
	view := &ScheduleView{
		DoctorID:     profile.DoctorID,
		DoctorUserID: profile.DoctorUserID,
		Days:         make([]DayView, 0, len(models.Days)),
		Holidays:     profile.Holidays,
	}
	if view.Holidays == nil {
		view.Holidays = []models.Holiday{}
	}
	for _, key := range models.Days {
		day := profile.Schedule.Day(key)
		dv := DayView{Day: key, Label: key.Label(), Enabled: day.Enabled, Display: FormatTimeRange(day)}
		if day.Enabled {
			dv.Hours = day.Hours
		}
		view.Days = append(view.Days, dv)
	}
	return view
}
