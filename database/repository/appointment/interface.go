// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"

	"clinicdesk/models"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentRepository defines methods for appointment document access.
// UpdateFields keys are stored field names, e.g. "appointmentDate" or "cancel_reason".
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByDoctorUserID(ctx context.Context, doctorUserID string) ([]models.Appointment, error)
	GetAll(ctx context.Context) ([]models.Appointment, error)
	Create(ctx context.Context, appt *models.Appointment) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
