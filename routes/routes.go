package routes

import (
	"net/http"
	"time"

	"clinicdesk/handlers"
	"clinicdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterScheduleRoutes registers the acting doctor's schedule and holiday endpoints.
func RegisterScheduleRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	schedule := api.Group("/schedule")
	{
		schedule.GET("", hb.GetScheduleHandler)
		schedule.PUT("", hb.SaveScheduleHandler)
		schedule.GET("/availability", hb.CheckAvailabilityHandler)
		schedule.POST("/holidays", hb.AddHolidayHandler)
		schedule.DELETE("/holidays/:holidayID", hb.RemoveHolidayHandler)
	}
}

// RegisterAppointmentRoutes registers appointment endpoints.
func RegisterAppointmentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	appts := api.Group("/appointments")
	{
		appts.GET("", hb.ListAppointmentsHandler)
		appts.POST("", hb.CreateAppointmentHandler)
		appts.GET("/upcoming", hb.UpcomingAppointmentsHandler)
		appts.GET("/:id", hb.GetAppointmentHandler)
		appts.PUT("/:id/reschedule", hb.RescheduleAppointmentHandler)
		appts.PATCH("/:id/status", hb.UpdateStatusHandler)
		appts.DELETE("/:id", hb.DeleteAppointmentHandler)
	}
}

// RegisterDoctorRoutes sets up everything scoped to the acting doctor.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	doctor := r.Group("/api/doctor")
	doctor.Use(middleware.DoctorIdentityMiddleware(hb.Identity))

	RegisterScheduleRoutes(doctor, hb)
	RegisterAppointmentRoutes(doctor, hb)
	doctor.GET("/reviews", hb.ListReviewsHandler)
	doctor.GET("/reviews/summary", hb.ReviewSummaryHandler)
	doctor.GET("/dashboard", hb.DoctorStatsHandler)
}

// RegisterAdminRoutes sets up clinic-wide dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.GET("/stats", hb.AdminStatsHandler)
		adminGroup.GET("/appointments/stats", hb.AppointmentStatsHandler)
		adminGroup.GET("/doctors/popular", hb.PopularDoctorsHandler)
		adminGroup.GET("/doctors/available", hb.AvailableDoctorsHandler)
		adminGroup.GET("/doctors/schedule-stats", hb.ScheduleStatsHandler)
		adminGroup.GET("/departments/top", hb.TopDepartmentsHandler)
		adminGroup.GET("/departments/income", hb.IncomeByTreatmentHandler)
		adminGroup.GET("/patients/top", hb.TopPatientsHandler)
		adminGroup.GET("/transactions/recent", hb.RecentTransactionsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterMetricsRoute exposes gatherer in the Prometheus text format.
func RegisterMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDoctorRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r, gatherer)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
