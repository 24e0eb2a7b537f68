package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(doctors *memoryDoctors) *RepositoryStore {
	return NewRepositoryStore(doctors, time.UTC)
}

func TestRepositoryStore_RoundTrip(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
	store := newTestStore(doctors)
	ctx := context.Background()

	schedule := models.NewWeeklySchedule()
	schedule[models.Monday] = models.DaySchedule{Enabled: true, Hours: hours("09:00", "17:00")}
	schedule[models.Wednesday] = models.DaySchedule{Enabled: true}
	schedule[models.Friday] = models.DaySchedule{Enabled: false, Hours: hours("10:00", "12:00")}
	saved := &models.AvailabilityProfile{
		Schedule: schedule,
		Holidays: []models.Holiday{{ID: "holiday-1", Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), Reason: "Christmas"}},
	}

	require.NoError(t, store.SaveProfile(ctx, "user-1", saved))
	loaded, err := store.LoadProfile(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "doc-1", loaded.DoctorID)
	assert.Equal(t, "user-1", loaded.DoctorUserID)
	assert.Equal(t, saved.Holidays, loaded.Holidays)

	want := models.NewWeeklySchedule()
	want[models.Monday] = models.DaySchedule{Enabled: true, Hours: hours("09:00", "17:00")}
	want[models.Wednesday] = models.DaySchedule{Enabled: true}
	// Disabled days drop their range on save.
	assert.Equal(t, want, loaded.Schedule)
}

func TestRepositoryStore_SaveWritesEveryDay(t *testing.T) {
	doctors := newMemoryDoctors(models.Doctor{
		ID:     "doc-1",
		UserID: "user-1",
		TimeSlots: map[string]time.Time{
			"tuesdayStart": time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
			"tuesdayEnd":   time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		},
		EnabledDays: map[string]bool{"tuesday": true},
	})
	store := newTestStore(doctors)

	schedule := models.NewWeeklySchedule()
	schedule[models.Monday] = models.DaySchedule{Enabled: true, Hours: hours("09:00", "17:00")}
	require.NoError(t, store.SaveProfile(context.Background(), "user-1", &models.AvailabilityProfile{Schedule: schedule}))

	doc := doctors.doctors["doc-1"]
	assert.Len(t, doc.TimeSlots, 14)
	assert.Len(t, doc.EnabledDays, 7)
	assert.NotNil(t, doc.Holidays)

	anchor := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, anchor.Add(9*time.Hour), doc.TimeSlots["mondayStart"])
	assert.Equal(t, anchor.Add(17*time.Hour), doc.TimeSlots["mondayEnd"])
	// Stale tuesday hours are cleared to the midnight sentinel.
	assert.Equal(t, anchor, doc.TimeSlots["tuesdayStart"])
	assert.Equal(t, anchor, doc.TimeSlots["tuesdayEnd"])
	assert.False(t, doc.EnabledDays["tuesday"])
}

func TestRepositoryStore_RoundTripAcrossDSTStart(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
	store := NewRepositoryStore(doctors, loc)
	ctx := context.Background()

	// 02:30 does not exist in New York on 2025-03-09.
	schedule := models.NewWeeklySchedule()
	schedule[models.Sunday] = models.DaySchedule{Enabled: true, Hours: hours("02:30", "09:00")}
	schedule[models.Saturday] = models.DaySchedule{Enabled: true, Hours: hours("01:15", "03:45")}
	require.NoError(t, store.SaveProfile(ctx, "user-1", &models.AvailabilityProfile{Schedule: schedule}))

	loaded, err := store.LoadProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, schedule, loaded.Schedule)
	assert.Equal(t, "02:30 - 09:00", FormatTimeRange(loaded.Schedule[models.Sunday]))
}

func TestRepositoryStore_KeepsStoredRangeEndingBeforeStart(t *testing.T) {
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
	store := newTestStore(doctors)
	ctx := context.Background()

	profile, err := store.LoadProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.DaySchedule{Enabled: true, Hours: hours("17:00", "09:00")}, profile.Schedule[models.Monday])
	assert.Equal(t, "17:00 - 09:00", FormatTimeRange(profile.Schedule[models.Monday]))

	require.NoError(t, store.SaveProfile(ctx, "user-1", profile))
	slots := doctors.doctors["doc-1"].TimeSlots
	assert.Equal(t, 17, slots["mondayStart"].Hour())
	assert.Equal(t, 9, slots["mondayEnd"].Hour())
}

func TestRepositoryStore_LoadEmptySchedule(t *testing.T) {
	store := newTestStore(newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"}))

	profile, err := store.LoadProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.NewWeeklySchedule(), profile.Schedule)
	assert.Empty(t, profile.Holidays)
}

func TestRepositoryStore_LoadLegacyDocument(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	store := newTestStore(newMemoryDoctors(models.Doctor{
		ID:     "doc-1",
		UserID: "user-1",
		TimeSlots: map[string]time.Time{
			"mondayStart":  day.Add(9 * time.Hour),
			"mondayEnd":    day.Add(13 * time.Hour),
			"tuesdayStart": day,
			"tuesdayEnd":   day,
		},
	}))

	profile, err := store.LoadProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.DaySchedule{Enabled: true, Hours: hours("09:00", "13:00")}, profile.Schedule[models.Monday])
	assert.Equal(t, models.DaySchedule{}, profile.Schedule[models.Tuesday])
}

func TestRepositoryStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown doctor", func(t *testing.T) {
		store := newTestStore(newMemoryDoctors())
		_, err := store.LoadProfile(ctx, "ghost")
		assert.ErrorIs(t, err, ErrProfileNotFound)
		assert.ErrorIs(t, store.SaveProfile(ctx, "ghost", &models.AvailabilityProfile{}), ErrProfileNotFound)
	})

	t.Run("load failure", func(t *testing.T) {
		doctors := newMemoryDoctors()
		doctors.findErr = errors.New("connection reset")
		store := newTestStore(doctors)

		_, err := store.LoadProfile(ctx, "user-1")
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "load", storeErr.Op)
		assert.EqualError(t, errors.Unwrap(err), "connection reset")
	})

	t.Run("save failure", func(t *testing.T) {
		doctors := newMemoryDoctors(models.Doctor{ID: "doc-1", UserID: "user-1"})
		doctors.saveErr = errors.New("write conflict")
		store := newTestStore(doctors)

		err := store.SaveProfile(ctx, "user-1", &models.AvailabilityProfile{Schedule: models.NewWeeklySchedule()})
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "save", storeErr.Op)
	})
}
