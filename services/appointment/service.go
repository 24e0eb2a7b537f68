package appointment

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	doctorRepo "clinicdesk/database/repository/doctor"
	userRepo "clinicdesk/database/repository/user"
	"clinicdesk/models"
	"clinicdesk/services/availability"
	"clinicdesk/services/events"

	"go.uber.org/zap"
)

// DefaultAppointmentService implements AppointmentService. Create and
// Reschedule consult the Guard before writing.
type DefaultAppointmentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Guard        availability.AppointmentGuard
	Events       events.Publisher
	Logger       *zap.Logger
	Now          func() time.Time
}

func (s *DefaultAppointmentService) List(ctx context.Context, doctorUserID string, f Filter) ([]models.Appointment, error) {
	all, err := s.Appointments.GetByDoctorUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Appointment, 0, len(all))
	for _, a := range all {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if !f.From.IsZero() && a.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !a.Date.Before(f.To) {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func matchesSearch(a models.Appointment, needle string) bool {
	for _, hay := range []string{a.PatientName, a.PatientEmail, a.PatientUserID, a.ID} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// Upcoming returns future pending or confirmed appointments, soonest first.
func (s *DefaultAppointmentService) Upcoming(ctx context.Context, doctorUserID string, limit int) ([]models.Appointment, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	all, err := s.Appointments.GetByDoctorUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var out []models.Appointment
	for _, a := range all {
		if a.Date.After(now) && (a.Status == models.StatusPending || a.Status == models.StatusConfirmed) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *DefaultAppointmentService) Get(ctx context.Context, id, doctorUserID string) (*models.Appointment, error) {
	return s.owned(ctx, id, doctorUserID)
}

// owned loads an appointment and hides it from doctors other than its owner.
func (s *DefaultAppointmentService) owned(ctx context.Context, id, doctorUserID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.DoctorUserID != doctorUserID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

// GetWithPatient falls back to the inline patient fields when the user record is missing.
func (s *DefaultAppointmentService) GetWithPatient(ctx context.Context, id, doctorUserID string) (*models.AppointmentWithPatient, error) {
	appt, err := s.owned(ctx, id, doctorUserID)
	if err != nil {
		return nil, err
	}
	out := &models.AppointmentWithPatient{Appointment: *appt}
	if appt.PatientUserID != "" {
		user, err := s.Users.GetByUID(ctx, appt.PatientUserID)
		switch {
		case err == nil:
			out.Patient = user
		case errors.Is(err, userRepo.ErrUserNotFound):
		default:
			s.logger().Warn("Failed to load patient", zap.String("appointmentId", id), zap.Error(err))
		}
	}
	if out.Patient == nil {
		out.Patient = &models.User{
			UID:         appt.PatientUserID,
			Name:        appt.PatientName,
			Email:       appt.PatientEmail,
			PhoneNumber: appt.PatientPhone,
			Role:        models.RolePatient,
		}
	}
	return out, nil
}

func (s *DefaultAppointmentService) Create(ctx context.Context, doctorUserID string, in CreateInput) (*models.Appointment, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	if err := s.Guard.AuthorizeCreate(ctx, doctorUserID, in.Date); err != nil {
		return nil, err
	}

	now := s.now()
	appt := &models.Appointment{
		ID:            newAppointmentID(now),
		DoctorUserID:  doctorUserID,
		PatientUserID: in.PatientUserID,
		PatientName:   strings.TrimSpace(in.PatientName),
		PatientEmail:  in.PatientEmail,
		PatientPhone:  in.PatientPhone,
		Date:          in.Date,
		Time:          in.Time,
		Type:          in.Type,
		IsVideoCall:   in.Type == models.TypeVideo,
		Complaint:     in.Complaint,
		Description:   in.Description,
		Urgency:       in.Urgency,
		Status:        models.StatusPending,
		PaymentOption: in.PaymentOption,
		Price:         in.Price,
		CreatedAt:     now,
	}
	if doctor, err := s.Doctors.FindByOwnerReference(ctx, doctorUserID); err == nil {
		appt.DoctorID = doctor.ID
		appt.DoctorName = doctor.Name
	} else if !errors.Is(err, doctorRepo.ErrDoctorNotFound) {
		s.logger().Warn("Failed to resolve doctor for appointment", zap.String("doctorUserId", doctorUserID), zap.Error(err))
	}

	if err := s.Appointments.Create(ctx, appt); err != nil {
		return nil, err
	}
	s.publish(ctx, events.ActionCreated, appt)
	return appt, nil
}

func validateCreate(in *CreateInput) error {
	if strings.TrimSpace(in.PatientName) == "" {
		return &availability.ValidationError{Field: "patientName", Message: "patient name is required"}
	}
	if in.Date.IsZero() {
		return &availability.ValidationError{Field: "appointmentDate", Message: "appointment date is required"}
	}
	if in.Price < 0 {
		return &availability.ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	switch in.Type {
	case "":
		in.Type = models.TypePhysical
	case models.TypePhysical, models.TypeVideo:
	default:
		return &availability.ValidationError{Field: "appointmentType", Message: "must be physical or video"}
	}
	return nil
}

// Reschedule validates only the new date against the doctor's holidays.
func (s *DefaultAppointmentService) Reschedule(ctx context.Context, id, doctorUserID string, in RescheduleInput) (*models.Appointment, error) {
	if in.Date.IsZero() {
		return nil, &availability.ValidationError{Field: "appointmentDate", Message: "new date is required"}
	}
	appt, err := s.owned(ctx, id, doctorUserID)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.StatusCancelled || appt.IsCompleted() {
		return nil, &availability.ValidationError{Field: "status", Message: fmt.Sprintf("cannot reschedule a %s appointment", appt.Status)}
	}
	if err := s.Guard.AuthorizeReschedule(ctx, doctorUserID, in.Date); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"appointmentDate": in.Date,
		"status":          models.StatusRescheduled,
	}
	if in.Time != "" {
		fields["appointmentTime"] = in.Time
		appt.Time = in.Time
	}
	if err := s.Appointments.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	appt.Date = in.Date
	appt.Status = models.StatusRescheduled
	s.publish(ctx, events.ActionRescheduled, appt)
	return appt, nil
}

// UpdateStatus requires a reason when cancelling.
func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, id, doctorUserID, status, cancelReason string) (*models.Appointment, error) {
	if !models.IsValidStatus(status) {
		return nil, &availability.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	cancelReason = strings.TrimSpace(cancelReason)
	if status == models.StatusCancelled && cancelReason == "" {
		return nil, &availability.ValidationError{Field: "cancelReason", Message: "a reason is required to cancel"}
	}
	if _, err := s.owned(ctx, id, doctorUserID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"status": status}
	if status == models.StatusCancelled {
		fields["cancel_reason"] = cancelReason
	}
	if err := s.Appointments.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ActionStatus, appt)
	return appt, nil
}

func (s *DefaultAppointmentService) Delete(ctx context.Context, id, doctorUserID string) error {
	appt, err := s.owned(ctx, id, doctorUserID)
	if err != nil {
		return err
	}
	if err := s.Appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.ActionDeleted, appt)
	return nil
}

func (s *DefaultAppointmentService) publish(ctx context.Context, action string, appt *models.Appointment) {
	if s.Events == nil {
		return
	}
	evt := events.NewEvent(events.ResourceAppointment, action, appt.ID, appt.DoctorUserID)
	evt.Data = map[string]interface{}{
		"status":          appt.Status,
		"appointmentDate": appt.Date,
	}
	if err := s.Events.Publish(ctx, evt); err != nil {
		s.logger().Warn("Failed to publish appointment event", zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// newAppointmentID builds "APT<unix millis><0-999>".
func newAppointmentID(now time.Time) string {
	return fmt.Sprintf("APT%d%d", now.UnixMilli(), rand.IntN(1000))
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultAppointmentService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
