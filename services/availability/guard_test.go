package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicdesk/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestGuard(store ScheduleStore) (*Guard, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Guard{
		Store:   store,
		Engine:  NewEngine(time.UTC, nil),
		Metrics: metrics.NewGuardMetrics(prometheus.NewRegistry()),
		Logger:  zap.New(core),
	}, logs
}

func TestGuard_HolidayScenario(t *testing.T) {
	store := &stubStore{profile: mondayProfile()}
	guard, _ := newTestGuard(store)
	ctx := context.Background()

	err := guard.AuthorizeCreate(ctx, "user-1", time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC))
	var conflict *HolidayConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "user-1", conflict.DoctorID)
	assert.Equal(t, "holiday-xmas", conflict.HolidayID)
	assert.Equal(t, "2025-12-25", conflict.Date.Format("2006-01-02"))

	assert.NoError(t, guard.AuthorizeCreate(ctx, "user-1", time.Date(2025, 12, 26, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, store.loads)
}

func TestGuard_RescheduleChecksNewDateOnly(t *testing.T) {
	guard, _ := newTestGuard(&stubStore{profile: mondayProfile()})
	ctx := context.Background()

	err := guard.AuthorizeReschedule(ctx, "user-1", time.Date(2025, 12, 25, 16, 30, 0, 0, time.UTC))
	var conflict *HolidayConflictError
	assert.ErrorAs(t, err, &conflict)

	assert.NoError(t, guard.AuthorizeReschedule(ctx, "user-1", time.Date(2025, 12, 29, 9, 0, 0, 0, time.UTC)))
}

func TestGuard_FailsOpenOnStoreError(t *testing.T) {
	store := &stubStore{loadErr: &StoreError{Op: "load", Err: errors.New("deadline exceeded")}}
	guard, logs := newTestGuard(store)

	err := guard.AuthorizeCreate(context.Background(), "user-1", time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	entries := logs.FilterMessage("Failed to load availability profile, allowing appointment").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "create", entries[0].ContextMap()["operation"])
}

func TestGuard_FailsOpenOnMissingProfile(t *testing.T) {
	guard, logs := newTestGuard(&stubStore{loadErr: ErrProfileNotFound})

	err := guard.AuthorizeReschedule(context.Background(), "ghost", time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("No availability profile, allowing appointment").Len())
}

func TestGuard_UnexpectedErrorIsReturned(t *testing.T) {
	guard, _ := newTestGuard(&stubStore{loadErr: context.Canceled})

	err := guard.AuthorizeCreate(context.Background(), "user-1", time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGuard_FailOpenWithRealStore(t *testing.T) {
	doctors := newMemoryDoctors()
	doctors.findErr = errors.New("no reachable servers")
	guard, _ := newTestGuard(NewRepositoryStore(doctors, time.UTC))

	assert.NoError(t, guard.AuthorizeCreate(context.Background(), "user-1", time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)))
}

func TestGuard_EnforceWorkingHours(t *testing.T) {
	guard, _ := newTestGuard(&stubStore{profile: mondayProfile()})
	ctx := context.Background()

	// Off by default: a closed Friday is still bookable.
	assert.NoError(t, guard.AuthorizeCreate(ctx, "user-1", time.Date(2025, 12, 26, 10, 0, 0, 0, time.UTC)))

	guard.EnforceWorkingHours = true
	err := guard.AuthorizeCreate(ctx, "user-1", time.Date(2025, 12, 26, 10, 0, 0, 0, time.UTC))
	var outside *OutsideWorkingHoursError
	require.ErrorAs(t, err, &outside)
	assert.Equal(t, "Friday", outside.Day)

	assert.NoError(t, guard.AuthorizeCreate(ctx, "user-1", time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)))

	err = guard.AuthorizeCreate(ctx, "user-1", time.Date(2025, 12, 22, 18, 0, 0, 0, time.UTC))
	assert.ErrorAs(t, err, &outside)

	// Holidays win over the hours check.
	err = guard.AuthorizeCreate(ctx, "user-1", time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC))
	var conflict *HolidayConflictError
	assert.ErrorAs(t, err, &conflict)
}
