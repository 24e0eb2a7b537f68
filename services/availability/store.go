package availability

import (
	"context"
	"errors"
	"time"

	doctorRepo "clinicdesk/database/repository/doctor"
	"clinicdesk/models"
)

// ScheduleStore loads and saves availability profiles keyed by the doctor's user id.
type ScheduleStore interface {
	LoadProfile(ctx context.Context, doctorUserID string) (*models.AvailabilityProfile, error)
	SaveProfile(ctx context.Context, doctorUserID string, profile *models.AvailabilityProfile) error
}

// RepositoryStore maps profiles onto the doctor document. Times are stored as
// timestamps on a fixed anchor date in the clinic zone; midnight marks an
// unset endpoint.
type RepositoryStore struct {
	Doctors  doctorRepo.DoctorRepository
	Location *time.Location
}

func NewRepositoryStore(doctors doctorRepo.DoctorRepository, loc *time.Location) *RepositoryStore {
	if loc == nil {
		loc = time.UTC
	}
	return &RepositoryStore{Doctors: doctors, Location: loc}
}

func (s *RepositoryStore) resolve(ctx context.Context, op, doctorUserID string) (*models.Doctor, error) {
	doctor, err := s.Doctors.FindByOwnerReference(ctx, doctorUserID)
	if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: op, Err: err}
	}
	return doctor, nil
}

// LoadProfile never fails on an absent schedule; it loads as all days disabled.
func (s *RepositoryStore) LoadProfile(ctx context.Context, doctorUserID string) (*models.AvailabilityProfile, error) {
	doctor, err := s.resolve(ctx, "load", doctorUserID)
	if err != nil {
		return nil, err
	}
	return s.ProfileFromDoctor(doctor), nil
}

// ProfileFromDoctor decodes the stored schedule fields of a doctor document.
func (s *RepositoryStore) ProfileFromDoctor(doctor *models.Doctor) *models.AvailabilityProfile {
	profile := &models.AvailabilityProfile{
		DoctorID:     doctor.ID,
		DoctorUserID: doctor.UserID,
		Schedule:     models.NewWeeklySchedule(),
		Holidays:     append([]models.Holiday(nil), doctor.Holidays...),
	}

	for _, key := range models.Days {
		hours := s.storedRange(doctor.TimeSlots, key)
		enabled, flagged := doctor.EnabledDays[string(key)]
		if !flagged {
			// Documents written before enabled_days existed: a valid range implies enabled.
			enabled = hours != nil
		}
		day := models.DaySchedule{Enabled: enabled}
		if enabled {
			day.Hours = hours
		}
		profile.Schedule[key] = day
	}
	return profile
}

func (s *RepositoryStore) storedRange(slots map[string]time.Time, key models.DayKey) *models.TimeRange {
	start, okStart := slots[models.StartSlotKey(key)]
	end, okEnd := slots[models.EndSlotKey(key)]
	if !okStart || !okEnd {
		return nil
	}
	r := models.TimeRange{
		Start: models.TimeOfDayOf(start.In(s.Location)),
		End:   models.TimeOfDayOf(end.In(s.Location)),
	}
	if !r.Valid() {
		return nil
	}
	return &r
}

// SaveProfile overwrites every weekday's slots, the enabled flags and the full holiday list.
func (s *RepositoryStore) SaveProfile(ctx context.Context, doctorUserID string, profile *models.AvailabilityProfile) error {
	doctor, err := s.resolve(ctx, "save", doctorUserID)
	if err != nil {
		return err
	}

	doc := s.ScheduleDocument(profile)
	if err := s.Doctors.UpdateSchedule(ctx, doctor.ID, doc); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return ErrProfileNotFound
		}
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}

// ScheduleDocument encodes a profile into the persisted field layout.
func (s *RepositoryStore) ScheduleDocument(profile *models.AvailabilityProfile) models.ScheduleDocument {
	// January 1st has no DST transition in any zone we run in, so every wall
	// time exists on it and loads back unchanged.
	anchor := time.Date(1970, time.January, 1, 0, 0, 0, 0, s.Location)

	doc := models.ScheduleDocument{
		TimeSlots:   make(map[string]time.Time, 2*len(models.Days)),
		EnabledDays: make(map[string]bool, len(models.Days)),
		Holidays:    []models.Holiday{},
	}
	for _, key := range models.Days {
		day := profile.Schedule.Day(key)
		doc.EnabledDays[string(key)] = day.Enabled

		start, end := anchor, anchor
		if day.HasHours() {
			start = s.at(anchor, day.Hours.Start)
			end = s.at(anchor, day.Hours.End)
		}
		doc.TimeSlots[models.StartSlotKey(key)] = start
		doc.TimeSlots[models.EndSlotKey(key)] = end
	}
	doc.Holidays = append(doc.Holidays, profile.Holidays...)
	return doc
}

func (s *RepositoryStore) at(anchor time.Time, t models.TimeOfDay) time.Time {
	y, m, d := anchor.Date()
	return time.Date(y, m, d, int(t)/60, int(t)%60, 0, 0, s.Location)
}

