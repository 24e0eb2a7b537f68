package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinicdesk/middleware"
	"clinicdesk/services/appointment"
	"clinicdesk/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	createHolidayMessage     = "Cannot create appointment on a holiday. Please select a different date."
	rescheduleHolidayMessage = "Cannot reschedule appointment to a holiday. Please select a different date."
)

type AppointmentHandler struct {
	Service appointment.AppointmentService
}

func NewAppointmentHandler(s appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: s}
}

// ListAppointmentsHandler accepts status, type, from, to (YYYY-MM-DD or RFC 3339), search and limit.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	f := appointment.Filter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
	}
	var err error
	if f.From, err = parseQueryTime(c.Query("from")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' parameter", "message": err.Error()})
		return
	}
	if f.To, err = parseQueryTime(c.Query("to")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' parameter", "message": err.Error()})
		return
	}
	if f.Limit, err = parseLimit(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}

	appts, err := h.Service.List(c.Request.Context(), middleware.DoctorUserID(c), f)
	if err != nil {
		respondError(c, err, "Failed to fetch appointments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "count": len(appts)})
}

func (h *AppointmentHandler) UpcomingAppointmentsHandler(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}
	appts, err := h.Service.Upcoming(c.Request.Context(), middleware.DoctorUserID(c), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch upcoming appointments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Service.GetWithPatient(c.Request.Context(), c.Param("id"), middleware.DoctorUserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch appointment")
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var in appointment.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.Create(c.Request.Context(), middleware.DoctorUserID(c), in)
	if err != nil {
		if holidayConflict(c, err, createHolidayMessage) {
			return
		}
		respondError(c, err, "Failed to create appointment")
		return
	}
	getLogger(c).Info("Appointment created", zap.String("appointmentId", appt.ID))
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment created successfully", "appointment": appt})
}

func (h *AppointmentHandler) RescheduleAppointmentHandler(c *gin.Context) {
	var in appointment.RescheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.Reschedule(c.Request.Context(), c.Param("id"), middleware.DoctorUserID(c), in)
	if err != nil {
		if holidayConflict(c, err, rescheduleHolidayMessage) {
			return
		}
		respondError(c, err, "Failed to reschedule appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment rescheduled successfully", "appointment": appt})
}

func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	var body struct {
		Status       string `json:"status" binding:"required"`
		CancelReason string `json:"cancelReason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.DoctorUserID(c), body.Status, body.CancelReason)
	if err != nil {
		respondError(c, err, "Failed to update appointment status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment status updated", "appointment": appt})
}

func (h *AppointmentHandler) DeleteAppointmentHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), middleware.DoctorUserID(c)); err != nil {
		respondError(c, err, "Failed to delete appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

// holidayConflict answers 409 with the user-facing message when err is a holiday rejection.
func holidayConflict(c *gin.Context, err error, message string) bool {
	var conflict *availability.HolidayConflictError
	if !errors.As(err, &conflict) {
		return false
	}
	c.JSON(http.StatusConflict, gin.H{
		"error":   message,
		"message": conflict.Reason,
		"holiday": gin.H{"id": conflict.HolidayID, "date": conflict.Date.Format("2006-01-02"), "reason": conflict.Reason},
	})
	return true
}

func parseQueryTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("limit must be a non-negative integer")
	}
	return n, nil
}
