package handlers

import (
	"net/http"

	"clinicdesk/middleware"
	"clinicdesk/services/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the doctor and admin dashboards.
type DashboardHandler struct {
	Service dashboard.DashboardService
}

func NewDashboardHandler(s dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

func (h *DashboardHandler) DoctorStatsHandler(c *gin.Context) {
	stats, err := h.Service.DoctorStats(c.Request.Context(), middleware.DoctorUserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch doctor statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) AdminStatsHandler(c *gin.Context) {
	stats, err := h.Service.AdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch admin statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) AppointmentStatsHandler(c *gin.Context) {
	stats, err := h.Service.AppointmentStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch appointment statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) PopularDoctorsHandler(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}
	doctors, err := h.Service.PopularDoctors(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch popular doctors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (h *DashboardHandler) TopDepartmentsHandler(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}
	departments, err := h.Service.TopDepartments(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch top departments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

func (h *DashboardHandler) ScheduleStatsHandler(c *gin.Context) {
	stats, err := h.Service.DoctorScheduleStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch schedule statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) AvailableDoctorsHandler(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}
	doctors, err := h.Service.AvailableDoctors(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch available doctors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (h *DashboardHandler) TopPatientsHandler(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}
	patients, err := h.Service.TopPatients(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch top patients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (h *DashboardHandler) RecentTransactionsHandler(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter"})
		return
	}
	transactions, err := h.Service.RecentTransactions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch recent transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (h *DashboardHandler) IncomeByTreatmentHandler(c *gin.Context) {
	income, err := h.Service.IncomeByTreatment(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch income by treatment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatments": income})
}
