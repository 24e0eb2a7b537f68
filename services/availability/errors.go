package availability

import (
	"errors"
	"fmt"
	"time"
)

// ErrProfileNotFound means no doctor document exists for the given identity.
var ErrProfileNotFound = errors.New("availability profile not found")

// ErrHolidayNotFound is returned when removing an unknown holiday id.
var ErrHolidayNotFound = errors.New("holiday not found")

// HolidayConflictError rejects a booking that lands on one of the doctor's holidays.
type HolidayConflictError struct {
	DoctorID  string
	Date      time.Time
	HolidayID string
	Reason    string
}

func (e *HolidayConflictError) Error() string {
	return fmt.Sprintf("doctor %s is on holiday on %s", e.DoctorID, e.Date.Format("2006-01-02"))
}

// OutsideWorkingHoursError rejects a booking outside the day's configured hours.
type OutsideWorkingHoursError struct {
	DoctorID  string
	Candidate time.Time
	Day       string
}

func (e *OutsideWorkingHoursError) Error() string {
	return fmt.Sprintf("doctor %s does not accept appointments at %s on %s",
		e.DoctorID, e.Candidate.Format("15:04"), e.Day)
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("schedule store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError is malformed input, rejected before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
