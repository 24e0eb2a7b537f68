package appointmentRepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentFromData(t *testing.T) {
	date := time.Date(2025, 12, 26, 10, 0, 0, 0, time.UTC)
	data := map[string]interface{}{
		"doctorUserId":    "Users/doctor-user-1",
		"UserPatientID":   "Users/patient-1",
		"appointmentDate": date,
		"appointmentType": "video",
		"isVideoCall":     true,
		"status":          "confirmed",
		"price":           "2500",
		"review":          map[string]interface{}{"Rating": int64(5)},
	}

	appt := appointmentFromData("APT99", data)

	assert.Equal(t, "APT99", appt.ID)
	assert.Equal(t, "doctor-user-1", appt.DoctorUserID)
	assert.Equal(t, "patient-1", appt.PatientUserID)
	assert.Equal(t, date, appt.Date)
	assert.True(t, appt.IsVideoCall)
	assert.Equal(t, 2500.0, appt.Price)
	assert.Equal(t, int64(5), appt.Review["Rating"])
	assert.True(t, appt.CreatedAt.IsZero())
}
