package doctorRepo

import (
	"testing"
	"time"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorFromData(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	data := map[string]interface{}{
		"userid":         "Users/user-1",
		"display_name":   "Dr. Kamau",
		"Specialization": "Dermatology",
		"time_slots":     map[string]interface{}{"mondayStart": start, "mondayEnd": "garbage"},
		"enabled_days":   map[string]interface{}{"monday": true, "tuesday": false},
		"holidays": []interface{}{
			map[string]interface{}{"id": "holiday-1", "date": time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "reason": "Christmas"},
			map[string]interface{}{"id": "holiday-2", "reason": "no date"},
			"not a map",
		},
	}

	doctor := doctorFromData("doc-1", data)

	assert.Equal(t, "doc-1", doctor.ID)
	assert.Equal(t, "user-1", doctor.UserID)
	assert.Equal(t, "Dr. Kamau", doctor.Name)
	assert.Equal(t, "Dermatology", doctor.Specialization)
	assert.Equal(t, start, doctor.TimeSlots["mondayStart"])
	assert.NotContains(t, doctor.TimeSlots, "mondayEnd")
	assert.True(t, doctor.EnabledDays["monday"])
	assert.False(t, doctor.EnabledDays["tuesday"])
	require.Len(t, doctor.Holidays, 1)
	assert.Equal(t, "holiday-1", doctor.Holidays[0].ID)
}

func TestDoctorFromData_EmptyDocument(t *testing.T) {
	doctor := doctorFromData("doc-1", map[string]interface{}{})
	assert.Empty(t, doctor.TimeSlots)
	assert.Empty(t, doctor.EnabledDays)
	assert.Empty(t, doctor.Holidays)
}

func TestScheduleUpdates(t *testing.T) {
	doc := models.ScheduleDocument{
		TimeSlots:   map[string]time.Time{"mondayStart": time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)},
		EnabledDays: map[string]bool{"monday": true},
		Holidays:    []models.Holiday{{ID: "holiday-1", Reason: "Leave"}},
	}

	updates := scheduleUpdates(doc)
	require.Len(t, updates, 3)
	assert.Equal(t, "time_slots", updates[0].Path)
	assert.Equal(t, "enabled_days", updates[1].Path)
	assert.Equal(t, "holidays", updates[2].Path)

	holidays := updates[2].Value.([]interface{})
	require.Len(t, holidays, 1)
	assert.Equal(t, "Leave", holidays[0].(map[string]interface{})["reason"])
}
