// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"
	"errors"

	"clinicdesk/models"
)

// ErrDoctorNotFound is returned when no doctor document matches.
var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorRepository defines methods for doctor document access.
type DoctorRepository interface {
	// FindByOwnerReference resolves a doctor through the user that owns the document.
	FindByOwnerReference(ctx context.Context, ownerID string) (*models.Doctor, error)
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetAll(ctx context.Context) ([]models.Doctor, error)
	Count(ctx context.Context) (int64, error)
	// UpdateSchedule overwrites time_slots, enabled_days and holidays.
	UpdateSchedule(ctx context.Context, id string, doc models.ScheduleDocument) error
}
