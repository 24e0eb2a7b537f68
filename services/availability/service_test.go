package availability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clinicdesk/models"
	"clinicdesk/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.events = append(p.events, evt)
	return nil
}

func newTestService(doctors *memoryDoctors) (*DefaultScheduleService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return &DefaultScheduleService{
		Store:  newTestStore(doctors),
		Engine: NewEngine(time.UTC, nil),
		Events: pub,
	}, pub
}

func TestScheduleService_SaveAndGet(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
	svc, pub := newTestService(doctors)
	ctx := context.Background()

	edit := models.ScheduleEdit{
		Days: map[models.DayKey]models.DayEdit{
			models.Monday: {Enabled: true, Ranges: []models.TimeRangeInput{{From: "09:00", To: "17:00"}}},
		},
		Holidays: []models.HolidayInput{{Date: "2025-12-25", Reason: "  Christmas "}},
	}
	view, err := svc.SaveSchedule(ctx, "user-1", edit)
	require.NoError(t, err)
	require.Len(t, view.Days, 7)
	assert.Equal(t, "09:00 - 17:00", view.Days[0].Display)
	assert.Equal(t, "Closed", view.Days[1].Display)
	require.Len(t, view.Holidays, 1)
	assert.Equal(t, "Christmas", view.Holidays[0].Reason)
	assert.True(t, strings.HasPrefix(view.Holidays[0].ID, "holiday-"))

	require.Len(t, pub.events, 1)
	assert.Equal(t, "clinicdesk.schedule.updated", pub.events[0].RoutingKey())
	assert.Equal(t, "doc-1", pub.events[0].EntityID)

	got, err := svc.GetSchedule(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, view, got)
}

func TestScheduleService_SaveKeepsHolidaysWhenOmitted(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{
		ID: "doc-1", UserID: "user-1",
		Holidays: []models.Holiday{{ID: "h1", Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), Reason: "Christmas"}},
	})
	svc, _ := newTestService(doctors)

	view, err := svc.SaveSchedule(context.Background(), "user-1", models.ScheduleEdit{})
	require.NoError(t, err)
	require.Len(t, view.Holidays, 1)
	assert.Equal(t, "h1", view.Holidays[0].ID)
}

func TestScheduleService_SaveRejectsInvalidInputBeforeWriting(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
	svc, pub := newTestService(doctors)
	ctx := context.Background()

	_, err := svc.SaveSchedule(ctx, "user-1", models.ScheduleEdit{
		Days: map[models.DayKey]models.DayEdit{models.Monday: {Enabled: true, Ranges: []models.TimeRangeInput{{From: "17:00", To: "09:00"}}}},
	})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.SaveSchedule(ctx, "user-1", models.ScheduleEdit{
		Holidays: []models.HolidayInput{{ID: "a", Date: "2025-12-25", Reason: "x"}, {ID: "a", Date: "2025-12-26", Reason: "y"}},
	})
	assert.ErrorAs(t, err, &vErr)

	assert.Zero(t, doctors.saves)
	assert.Empty(t, pub.events)
}

func TestScheduleService_SaveFailsClosed(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
	doctors.saveErr = errors.New("primary stepped down")
	svc, pub := newTestService(doctors)

	_, err := svc.SaveSchedule(context.Background(), "user-1", models.ScheduleEdit{})
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Empty(t, pub.events)
}

func TestScheduleService_AddHoliday(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
	svc, _ := newTestService(doctors)
	ctx := context.Background()

	holiday, err := svc.AddHoliday(ctx, "user-1", models.HolidayInput{Date: "2025-12-25T15:00:00Z", Reason: "Christmas"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), holiday.Date)
	assert.Len(t, doctors.doctors["doc-1"].Holidays, 1)

	_, err = svc.AddHoliday(ctx, "user-1", models.HolidayInput{ID: holiday.ID, Date: "2025-12-31", Reason: "dup"})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestScheduleService_AddHolidayKeepsStoredHours(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	doctors := newMemoryDoctors(models.Doctor{
		ID:     "doc-1",
		UserID: "user-1",
		TimeSlots: map[string]time.Time{
			"mondayStart": day.Add(17 * time.Hour),
			"mondayEnd":   day.Add(9 * time.Hour),
		},
		EnabledDays: map[string]bool{"monday": true},
	})
	svc, _ := newTestService(doctors)
	ctx := context.Background()

	_, err := svc.AddHoliday(ctx, "user-1", models.HolidayInput{Date: "2025-12-25", Reason: "Christmas"})
	require.NoError(t, err)

	slots := doctors.doctors["doc-1"].TimeSlots
	assert.Equal(t, 17, slots["mondayStart"].Hour())
	assert.Equal(t, 9, slots["mondayEnd"].Hour())

	view, err := svc.GetSchedule(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "17:00 - 09:00", view.Days[0].Display)
}

func TestScheduleService_AddHolidayValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    models.HolidayInput
		field string
	}{
		{"empty reason", models.HolidayInput{Date: "2025-12-25", Reason: ""}, "holiday.reason"},
		{"blank reason", models.HolidayInput{Date: "2025-12-25", Reason: "   "}, "holiday.reason"},
		{"missing date", models.HolidayInput{Reason: "Leave"}, "holiday.date"},
		{"bad date", models.HolidayInput{Date: "25/12/2025", Reason: "Leave"}, "holiday.date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
			store := &stubStore{profile: &models.AvailabilityProfile{}}
			svc := &DefaultScheduleService{Store: store, Engine: NewEngine(time.UTC, nil)}

			_, err := svc.AddHoliday(context.Background(), "user-1", tt.in)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Zero(t, store.loads)
			assert.Zero(t, doctors.saves)
		})
	}
}

func TestScheduleService_RemoveHoliday(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{
		ID: "doc-1", UserID: "user-1",
		Holidays: []models.Holiday{
			{ID: "h1", Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), Reason: "Christmas"},
			{ID: "h2", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Reason: "New year"},
		},
	})
	svc, _ := newTestService(doctors)
	ctx := context.Background()

	require.NoError(t, svc.RemoveHoliday(ctx, "user-1", "h1"))
	require.Len(t, doctors.doctors["doc-1"].Holidays, 1)
	assert.Equal(t, "h2", doctors.doctors["doc-1"].Holidays[0].ID)

	assert.ErrorIs(t, svc.RemoveHoliday(ctx, "user-1", "h1"), ErrHolidayNotFound)
}

func TestScheduleService_CheckAvailability(t *testing.T) {
	svc := &DefaultScheduleService{Store: &stubStore{profile: mondayProfile()}, Engine: NewEngine(time.UTC, nil)}
	ctx := context.Background()

	check, err := svc.CheckAvailability(ctx, "user-1", time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Monday", check.Day)
	assert.Equal(t, "09:00 - 17:00", check.Hours)
	assert.True(t, check.Bookable)
	assert.False(t, check.IsHoliday)

	check, err = svc.CheckAvailability(ctx, "user-1", time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, check.IsHoliday)
	assert.Equal(t, "Christmas", check.Holiday.Reason)
	assert.False(t, check.Bookable)
	assert.Equal(t, "Closed", check.Hours)

	_, err = (&DefaultScheduleService{Store: &stubStore{loadErr: ErrProfileNotFound}, Engine: NewEngine(time.UTC, nil)}).
		CheckAvailability(ctx, "ghost", time.Now())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
