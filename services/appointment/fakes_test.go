package appointment

import (
	"context"
	"sync"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	doctorRepo "clinicdesk/database/repository/doctor"
	userRepo "clinicdesk/database/repository/user"
	"clinicdesk/models"
	"clinicdesk/services/availability"
	"clinicdesk/services/events"
)

type memoryAppointments struct {
	mu    sync.Mutex
	items map[string]models.Appointment
}

func newMemoryAppointments(appts ...models.Appointment) *memoryAppointments {
	m := &memoryAppointments{items: map[string]models.Appointment{}}
	for _, a := range appts {
		m.items[a.ID] = a
	}
	return m
}

func (m *memoryAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (m *memoryAppointments) GetByDoctorUserID(_ context.Context, doctorUserID string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.items {
		if a.DoctorUserID == doctorUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryAppointments) GetAll(context.Context) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Appointment, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, nil
}

func (m *memoryAppointments) Create(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[appt.ID] = *appt
	return nil
}

func (m *memoryAppointments) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			a.Status = v.(string)
		case "cancel_reason":
			a.CancelReason = v.(string)
		case "appointmentTime":
			a.Time = v.(string)
		case "appointmentDate":
			a.Date = v.(time.Time)
		}
	}
	m.items[id] = a
	return nil
}

func (m *memoryAppointments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(m.items, id)
	return nil
}

type memoryUsers map[string]models.User

func (m memoryUsers) GetByUID(_ context.Context, uid string) (*models.User, error) {
	u, ok := m[uid]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}

func (m memoryUsers) GetByUIDs(_ context.Context, uids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range uids {
		if u, ok := m[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m memoryUsers) GetAll(context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m))
	for _, u := range m {
		out = append(out, u)
	}
	return out, nil
}

type memoryDoctors []models.Doctor

func (m memoryDoctors) FindByOwnerReference(_ context.Context, ownerID string) (*models.Doctor, error) {
	for _, d := range m {
		if d.UserID == ownerID {
			return &d, nil
		}
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

func (m memoryDoctors) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	for _, d := range m {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

func (m memoryDoctors) GetAll(context.Context) ([]models.Doctor, error) { return m, nil }

func (m memoryDoctors) Count(context.Context) (int64, error) { return int64(len(m)), nil }

func (m memoryDoctors) UpdateSchedule(context.Context, string, models.ScheduleDocument) error {
	return nil
}

// profileStore serves fixed profiles to a real Guard.
type profileStore struct {
	profiles map[string]*models.AvailabilityProfile
	err      error
}

func (s *profileStore) LoadProfile(_ context.Context, doctorUserID string) (*models.AvailabilityProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.profiles[doctorUserID]
	if !ok {
		return nil, availability.ErrProfileNotFound
	}
	return p, nil
}

func (s *profileStore) SaveProfile(context.Context, string, *models.AvailabilityProfile) error {
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.RoutingKey())
	}
	return out
}
