package handlers

import (
	"net/http"
	"time"

	"clinicdesk/middleware"
	"clinicdesk/models"
	"clinicdesk/services/availability"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler serves the acting doctor's weekly schedule and holidays.
type ScheduleHandler struct {
	Service availability.ScheduleService
}

func NewScheduleHandler(s availability.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: s}
}

func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	view, err := h.Service.GetSchedule(c.Request.Context(), middleware.DoctorUserID(c))
	if err != nil {
		respondError(c, err, "Failed to load schedule")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ScheduleHandler) SaveScheduleHandler(c *gin.Context) {
	var edit models.ScheduleEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	view, err := h.Service.SaveSchedule(c.Request.Context(), middleware.DoctorUserID(c), edit)
	if err != nil {
		respondError(c, err, "Failed to save schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule saved successfully", "schedule": view})
}

func (h *ScheduleHandler) AddHolidayHandler(c *gin.Context) {
	var in models.HolidayInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	holiday, err := h.Service.AddHoliday(c.Request.Context(), middleware.DoctorUserID(c), in)
	if err != nil {
		respondError(c, err, "Failed to add holiday")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Holiday added", "holiday": holiday})
}

func (h *ScheduleHandler) RemoveHolidayHandler(c *gin.Context) {
	if err := h.Service.RemoveHoliday(c.Request.Context(), middleware.DoctorUserID(c), c.Param("holidayID")); err != nil {
		respondError(c, err, "Failed to remove holiday")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holiday removed"})
}

// CheckAvailabilityHandler takes ?at=<RFC 3339>, defaulting to now.
func (h *ScheduleHandler) CheckAvailabilityHandler(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' parameter", "message": "expected RFC 3339 timestamp"})
			return
		}
		at = parsed
	}

	check, err := h.Service.CheckAvailability(c.Request.Context(), middleware.DoctorUserID(c), at)
	if err != nil {
		respondError(c, err, "Failed to check availability")
		return
	}
	c.JSON(http.StatusOK, check)
}
