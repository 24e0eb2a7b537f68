package availability

import (
	"context"
	"errors"
	"time"

	"clinicdesk/metrics"

	"go.uber.org/zap"
)

const (
	opCreate     = "create"
	opReschedule = "reschedule"
)

// AppointmentGuard is consulted by appointment workflows before a write.
// A nil error means the write may proceed.
type AppointmentGuard interface {
	AuthorizeCreate(ctx context.Context, doctorUserID string, candidate time.Time) error
	AuthorizeReschedule(ctx context.Context, doctorUserID string, newDate time.Time) error
}

// Guard rejects bookings on holidays and, when EnforceWorkingHours is set,
// outside the day's hours. A missing profile or a store read failure is
// logged, counted and allowed (fail-open); other errors are returned.
type Guard struct {
	Store               ScheduleStore
	Engine              *Engine
	Metrics             *metrics.GuardMetrics
	Logger              *zap.Logger
	EnforceWorkingHours bool
}

func (g *Guard) AuthorizeCreate(ctx context.Context, doctorUserID string, candidate time.Time) error {
	return g.authorize(ctx, opCreate, doctorUserID, candidate)
}

// AuthorizeReschedule checks the new date only; the vacated date is not revisited.
func (g *Guard) AuthorizeReschedule(ctx context.Context, doctorUserID string, newDate time.Time) error {
	return g.authorize(ctx, opReschedule, doctorUserID, newDate)
}

func (g *Guard) authorize(ctx context.Context, op, doctorUserID string, candidate time.Time) error {
	logger := g.logger().With(
		zap.String("operation", op),
		zap.String("doctorUserId", doctorUserID),
		zap.Time("candidate", candidate),
	)

	profile, err := g.Store.LoadProfile(ctx, doctorUserID)
	if err != nil {
		var storeErr *StoreError
		switch {
		case errors.Is(err, ErrProfileNotFound):
			logger.Warn("No availability profile, allowing appointment")
			g.Metrics.ObserveDecision(op, metrics.OutcomeFailOpenNotFound)
			return nil
		case errors.As(err, &storeErr):
			logger.Error("Failed to load availability profile, allowing appointment", zap.Error(err))
			g.Metrics.ObserveDecision(op, metrics.OutcomeFailOpenStoreErr)
			return nil
		default:
			g.Metrics.ObserveDecision(op, metrics.OutcomeUnexpectedFailure)
			return err
		}
	}

	if holiday, ok := g.Engine.HolidayOn(profile, candidate); ok {
		logger.Info("Appointment rejected: holiday", zap.String("holidayId", holiday.ID))
		g.Metrics.ObserveDecision(op, metrics.OutcomeHolidayConflict)
		return &HolidayConflictError{
			DoctorID:  doctorUserID,
			Date:      candidate,
			HolidayID: holiday.ID,
			Reason:    holiday.Reason,
		}
	}

	if g.EnforceWorkingHours && !g.Engine.IsBookable(profile, candidate) {
		day, _ := g.Engine.DayFor(profile, candidate)
		logger.Info("Appointment rejected: outside working hours", zap.String("day", string(day)))
		g.Metrics.ObserveDecision(op, metrics.OutcomeOutsideHours)
		return &OutsideWorkingHoursError{DoctorID: doctorUserID, Candidate: candidate, Day: day.Label()}
	}

	g.Metrics.ObserveDecision(op, metrics.OutcomeAllowed)
	return nil
}

func (g *Guard) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}
