package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DayKey names one of the seven weekdays as stored in the doctor document.
type DayKey string

const (
	Monday    DayKey = "monday"
	Tuesday   DayKey = "tuesday"
	Wednesday DayKey = "wednesday"
	Thursday  DayKey = "thursday"
	Friday    DayKey = "friday"
	Saturday  DayKey = "saturday"
	Sunday    DayKey = "sunday"
)

// Days lists the weekday keys in display order.
var Days = []DayKey{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayKeys = map[time.Weekday]DayKey{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayKeyFor maps a time.Weekday onto its schedule key.
func DayKeyFor(w time.Weekday) DayKey {
	return weekdayKeys[w]
}

// Valid reports whether k is one of the seven weekday keys.
func (k DayKey) Valid() bool {
	for _, d := range Days {
		if d == k {
			return true
		}
	}
	return false
}

// Label returns the capitalised day name, e.g. "Monday".
func (k DayKey) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// TimeOfDay is a wall-clock time expressed in minutes from midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:mm" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// TimeOfDayOf extracts the wall-clock part of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeRange is a working-hours window [Start, End).
type TimeRange struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Valid is false when either endpoint is midnight. Edits reject End <= Start,
// but such a stored range is still kept as written.
func (r TimeRange) Valid() bool {
	return r.Start > 0 && r.End > 0
}

// Contains reports whether t falls inside [Start, End).
func (r TimeRange) Contains(t TimeOfDay) bool {
	return t >= r.Start && t < r.End
}

// DaySchedule is one weekday's entry. Hours is nil when no range is set.
type DaySchedule struct {
	Enabled bool       `json:"enabled"`
	Hours   *TimeRange `json:"hours,omitempty"`
}

// HasHours reports whether the day is enabled with a set range.
func (d DaySchedule) HasHours() bool {
	return d.Enabled && d.Hours != nil && d.Hours.Valid()
}

// WeeklySchedule holds one entry per weekday key.
type WeeklySchedule map[DayKey]DaySchedule

// NewWeeklySchedule returns a schedule with every day disabled.
func NewWeeklySchedule() WeeklySchedule {
	s := make(WeeklySchedule, len(Days))
	for _, d := range Days {
		s[d] = DaySchedule{}
	}
	return s
}

// Day returns the entry for k; missing keys read as disabled.
func (s WeeklySchedule) Day(k DayKey) DaySchedule {
	if s == nil {
		return DaySchedule{}
	}
	return s[k]
}

// EnabledDays lists the enabled weekdays in display order.
func (s WeeklySchedule) EnabledDays() []DayKey {
	var out []DayKey
	for _, d := range Days {
		if s.Day(d).Enabled {
			out = append(out, d)
		}
	}
	return out
}

// Edit turns a schedule back into the raw edit shape accepted by the schedule editor.
func (s WeeklySchedule) Edit() ScheduleEdit {
	edit := ScheduleEdit{Days: make(map[DayKey]DayEdit, len(Days))}
	for _, d := range Days {
		day := s.Day(d)
		de := DayEdit{Enabled: day.Enabled}
		if day.Hours != nil {
			de.Ranges = []TimeRangeInput{{From: day.Hours.Start.String(), To: day.Hours.End.String()}}
		}
		edit.Days[d] = de
	}
	return edit
}

// Holiday is a calendar day on which a doctor takes no appointments.
type Holiday struct {
	ID     string    `bson:"id" json:"id"`         // e.g. "holiday-<uuid>"
	Date   time.Time `bson:"date" json:"date"`     // only the calendar day is meaningful
	Reason string    `bson:"reason" json:"reason"` // free text, never blank
}

// AvailabilityProfile is a doctor's weekly schedule plus holiday set.
type AvailabilityProfile struct {
	DoctorID     string         `json:"doctorId"`     // doctor document id
	DoctorUserID string         `json:"doctorUserId"` // owner reference (user id)
	Schedule     WeeklySchedule `json:"schedule"`
	Holidays     []Holiday      `json:"holidays"`
}

// ScheduleEdit is the raw, unvalidated schedule editor payload.
type ScheduleEdit struct {
	Days     map[DayKey]DayEdit `json:"days"`
	Holidays []HolidayInput     `json:"holidays,omitempty"`
}

// DayEdit may carry several ranges; only the first survives normalisation.
type DayEdit struct {
	Enabled bool             `json:"enabled"`
	Ranges  []TimeRangeInput `json:"ranges,omitempty"`
}

type TimeRangeInput struct {
	From string `json:"from"` // "HH:mm", empty when unset
	To   string `json:"to"`
}

// HolidayInput is a holiday as submitted by the schedule editor.
type HolidayInput struct {
	ID     string `json:"id,omitempty"`
	Date   string `json:"date"` // "2006-01-02" or RFC 3339
	Reason string `json:"reason"`
}
