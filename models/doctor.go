package models

import "time"

// Doctor is the persisted doctor document. Schedule data lives in
// TimeSlots ("mondayStart", "mondayEnd", ...) and EnabledDays.
type Doctor struct {
	ID             string               `bson:"id" json:"id"`
	UserID         string               `bson:"userid" json:"userId"` // owning user, the doctor's identity
	Name           string               `bson:"name,omitempty" json:"name,omitempty"`
	Email          string               `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialization string               `bson:"specialization,omitempty" json:"specialization,omitempty"`
	PhotoURL       string               `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	TimeSlots      map[string]time.Time `bson:"time_slots,omitempty" json:"timeSlots,omitempty"`
	EnabledDays    map[string]bool      `bson:"enabled_days,omitempty" json:"enabledDays,omitempty"`
	Holidays       []Holiday            `bson:"holidays,omitempty" json:"holidays,omitempty"`
	CreatedAt      time.Time            `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

// ScheduleDocument is the subset of Doctor rewritten on every schedule save.
type ScheduleDocument struct {
	TimeSlots   map[string]time.Time `bson:"time_slots"`
	EnabledDays map[string]bool      `bson:"enabled_days"`
	Holidays    []Holiday            `bson:"holidays"`
}

// StartSlotKey and EndSlotKey build the day-prefixed time_slots field names.
func StartSlotKey(d DayKey) string { return string(d) + "Start" }

func EndSlotKey(d DayKey) string { return string(d) + "End" }

// SpecializationOrDefault falls back to "General".
func (d Doctor) SpecializationOrDefault() string {
	if d.Specialization == "" {
		return "General"
	}
	return d.Specialization
}
