package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "clinicdesk/database/repository/appointment"
	doctorRepo "clinicdesk/database/repository/doctor"
	"clinicdesk/services/availability"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Anything unrecognised is a 500.
func respondError(c *gin.Context, err error, failure string) {
	var (
		validation *availability.ValidationError
		holiday    *availability.HolidayConflictError
		outside    *availability.OutsideWorkingHoursError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": validation.Message, "field": validation.Field})
	case errors.As(err, &holiday):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Doctor unavailable",
			"message": err.Error(),
			"holiday": gin.H{"id": holiday.HolidayID, "reason": holiday.Reason},
		})
	case errors.As(err, &outside):
		c.JSON(http.StatusConflict, gin.H{"error": "Doctor unavailable", "message": err.Error()})
	case errors.Is(err, availability.ErrProfileNotFound), errors.Is(err, doctorRepo.ErrDoctorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
	case errors.Is(err, availability.ErrHolidayNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Holiday not found"})
	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	default:
		getLogger(c).Error(failure, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, failure, err.Error())
	}
}
