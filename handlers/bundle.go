package handlers

import (
	"clinicdesk/services/identity"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Identity identity.Resolver

	// Schedule endpoints
	GetScheduleHandler       gin.HandlerFunc
	SaveScheduleHandler      gin.HandlerFunc
	AddHolidayHandler        gin.HandlerFunc
	RemoveHolidayHandler     gin.HandlerFunc
	CheckAvailabilityHandler gin.HandlerFunc

	// Appointment endpoints
	ListAppointmentsHandler      gin.HandlerFunc
	UpcomingAppointmentsHandler  gin.HandlerFunc
	GetAppointmentHandler        gin.HandlerFunc
	CreateAppointmentHandler     gin.HandlerFunc
	RescheduleAppointmentHandler gin.HandlerFunc
	UpdateStatusHandler          gin.HandlerFunc
	DeleteAppointmentHandler     gin.HandlerFunc

	// Review endpoints
	ListReviewsHandler   gin.HandlerFunc
	ReviewSummaryHandler gin.HandlerFunc

	// Dashboard endpoints
	DoctorStatsHandler        gin.HandlerFunc
	AdminStatsHandler         gin.HandlerFunc
	AppointmentStatsHandler   gin.HandlerFunc
	PopularDoctorsHandler     gin.HandlerFunc
	TopDepartmentsHandler     gin.HandlerFunc
	ScheduleStatsHandler      gin.HandlerFunc
	AvailableDoctorsHandler   gin.HandlerFunc
	TopPatientsHandler        gin.HandlerFunc
	RecentTransactionsHandler gin.HandlerFunc
	IncomeByTreatmentHandler  gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(resolver identity.Resolver, s *ScheduleHandler, a *AppointmentHandler, r *ReviewHandler, d *DashboardHandler) *HandlerBundle {
	return &HandlerBundle{
		Identity: resolver,

		GetScheduleHandler:       s.GetScheduleHandler,
		SaveScheduleHandler:      s.SaveScheduleHandler,
		AddHolidayHandler:        s.AddHolidayHandler,
		RemoveHolidayHandler:     s.RemoveHolidayHandler,
		CheckAvailabilityHandler: s.CheckAvailabilityHandler,

		ListAppointmentsHandler:      a.ListAppointmentsHandler,
		UpcomingAppointmentsHandler:  a.UpcomingAppointmentsHandler,
		GetAppointmentHandler:        a.GetAppointmentHandler,
		CreateAppointmentHandler:     a.CreateAppointmentHandler,
		RescheduleAppointmentHandler: a.RescheduleAppointmentHandler,
		UpdateStatusHandler:          a.UpdateStatusHandler,
		DeleteAppointmentHandler:     a.DeleteAppointmentHandler,

		ListReviewsHandler:   r.ListReviewsHandler,
		ReviewSummaryHandler: r.ReviewSummaryHandler,

		DoctorStatsHandler:        d.DoctorStatsHandler,
		AdminStatsHandler:         d.AdminStatsHandler,
		AppointmentStatsHandler:   d.AppointmentStatsHandler,
		PopularDoctorsHandler:     d.PopularDoctorsHandler,
		TopDepartmentsHandler:     d.TopDepartmentsHandler,
		ScheduleStatsHandler:      d.ScheduleStatsHandler,
		AvailableDoctorsHandler:   d.AvailableDoctorsHandler,
		TopPatientsHandler:        d.TopPatientsHandler,
		RecentTransactionsHandler: d.RecentTransactionsHandler,
		IncomeByTreatmentHandler:  d.IncomeByTreatmentHandler,
	}
}
