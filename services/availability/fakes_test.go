package availability

import (
	"context"
	"sync"

	doctorRepo "clinicdesk/database/repository/doctor"
	"clinicdesk/models"
)

// memoryDoctors is an in-memory DoctorRepository keyed by doctor id.
type memoryDoctors struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
	findErr error
	saveErr error
	saves   int
}

func newMemoryDoctors(doctors ...models.Doctor) *memoryDoctors {
	m := &memoryDoctors{doctors: map[string]*models.Doctor{}}
	for i := range doctors {
		d := doctors[i]
		m.doctors[d.ID] = &d
	}
	return m
}

func (m *memoryDoctors) FindByOwnerReference(_ context.Context, ownerID string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, d := range m.doctors {
		if d.UserID == ownerID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

func (m *memoryDoctors) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memoryDoctors) GetAll(context.Context) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Doctor, 0, len(m.doctors))
	for _, d := range m.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (m *memoryDoctors) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.doctors)), nil
}

func (m *memoryDoctors) UpdateSchedule(_ context.Context, id string, doc models.ScheduleDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	d, ok := m.doctors[id]
	if !ok {
		return doctorRepo.ErrDoctorNotFound
	}
	d.TimeSlots = doc.TimeSlots
	d.EnabledDays = doc.EnabledDays
	d.Holidays = doc.Holidays
	m.saves++
	return nil
}

// stubStore returns a fixed profile or error from LoadProfile.
type stubStore struct {
	profile *models.AvailabilityProfile
	loadErr error
	loads   int
}

func (s *stubStore) LoadProfile(context.Context, string) (*models.AvailabilityProfile, error) {
	s.loads++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.profile, nil
}

func (s *stubStore) SaveProfile(context.Context, string, *models.AvailabilityProfile) error {
	return nil
}
