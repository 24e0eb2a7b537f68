package appointment

import (
	"context"
	"time"

	"clinicdesk/models"
)

// AppointmentService is the doctor-facing appointment workflow. Operations on a
// single appointment report ErrAppointmentNotFound when it belongs to another doctor.
type AppointmentService interface {
	List(ctx context.Context, doctorUserID string, f Filter) ([]models.Appointment, error)
	Upcoming(ctx context.Context, doctorUserID string, limit int) ([]models.Appointment, error)
	Get(ctx context.Context, id, doctorUserID string) (*models.Appointment, error)
	GetWithPatient(ctx context.Context, id, doctorUserID string) (*models.AppointmentWithPatient, error)
	Create(ctx context.Context, doctorUserID string, in CreateInput) (*models.Appointment, error)
	Reschedule(ctx context.Context, id, doctorUserID string, in RescheduleInput) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id, doctorUserID, status, cancelReason string) (*models.Appointment, error)
	Delete(ctx context.Context, id, doctorUserID string) error
}

// Filter narrows List results. Zero values mean "any".
type Filter struct {
	Status string
	Type   string
	From   time.Time // inclusive
	To     time.Time // exclusive
	Search string    // matched against patient name, email and id
	Limit  int
}

type CreateInput struct {
	PatientUserID string    `json:"patientUserId"`
	PatientName   string    `json:"patientName" binding:"required"`
	PatientEmail  string    `json:"patientEmail"`
	PatientPhone  string    `json:"patientPhone"`
	Date          time.Time `json:"appointmentDate" binding:"required"`
	Time          string    `json:"appointmentTime"`
	Type          string    `json:"appointmentType"`
	Complaint     string    `json:"complaint"`
	Description   string    `json:"description"`
	Urgency       string    `json:"urgency"`
	PaymentOption string    `json:"paymentOption"`
	Price         float64   `json:"price"`
}

type RescheduleInput struct {
	Date time.Time `json:"appointmentDate" binding:"required"`
	Time string    `json:"appointmentTime"`
}

// DefaultUpcomingLimit is used when Upcoming is called with limit <= 0.
const DefaultUpcomingLimit = 5
