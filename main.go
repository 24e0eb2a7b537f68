package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicdesk/config"
	"clinicdesk/database"
	appointmentRepo "clinicdesk/database/repository/appointment"
	doctorRepo "clinicdesk/database/repository/doctor"
	userRepo "clinicdesk/database/repository/user"
	"clinicdesk/handlers"
	"clinicdesk/metrics"
	"clinicdesk/middleware"
	"clinicdesk/routes"
	"clinicdesk/services/appointment"
	"clinicdesk/services/availability"
	"clinicdesk/services/dashboard"
	"clinicdesk/services/events"
	"clinicdesk/services/identity"
	"clinicdesk/services/review"
	"clinicdesk/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type repositories struct {
	doctors      doctorRepo.DoctorRepository
	appointments appointmentRepo.AppointmentRepository
	users        userRepo.UserRepository
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var app *firebase.App
	if cfg.UsesFirebase() {
		var err error
		app, err = config.NewFirebaseApp(ctx, cfg)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
	}

	repos, checks := openStore(ctx, cfg, app, logger)

	if cfg.RedisAddr != "" {
		if err := utils.InitCache(); err != nil {
			logger.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			checks = append(checks, utils.RedisCheck("redis", utils.CacheClient))
		}
	}
	utils.StartHealthMonitor(ctx, checks...)

	reg := prometheus.NewRegistry()
	guardMetrics := metrics.NewGuardMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)
	cacheMetrics := metrics.NewCacheMetrics(reg)
	eventMetrics := metrics.NewEventMetrics(reg)

	// services.
	loc := cfg.Location()
	engine := availability.NewEngine(loc, logger.Named("availability"))
	store := availability.NewRepositoryStore(repos.doctors, loc)

	dashboardService := &dashboard.DefaultDashboardService{
		Doctors:      repos.doctors,
		Appointments: repos.appointments,
		Users:        repos.users,
		Cache:        utils.NewJSONCache(utils.CacheClient, utils.DashboardCachePrefix, cfg.DashboardCacheTTL),
		Metrics:      cacheMetrics,
		Location:     loc,
		Logger:       logger.Named("dashboard"),
	}

	amqpConn := dialAMQP(cfg, logger)
	dispatcher := &events.Dispatcher{
		Local:  []events.Invalidator{dashboardService},
		Logger: logger.Named("events"),
	}
	if amqpConn != nil {
		publisher, err := events.NewAMQPPublisher(amqpConn, cfg.AMQPExchange, eventMetrics)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to create event publisher: %v", err)
		}
		defer publisher.Close()
		dispatcher.Remote = publisher
	}

	listener, err := events.NewCacheInvalidationListener(amqpConn, cfg.AMQPExchange, dashboardService, eventMetrics, logger.Named("listener"))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to create cache invalidation listener: %v", err)
	}
	if err := listener.Start(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to start cache invalidation listener: %v", err)
	}
	defer listener.Stop()

	guard := &availability.Guard{
		Store:               store,
		Engine:              engine,
		Metrics:             guardMetrics,
		Logger:              logger.Named("guard"),
		EnforceWorkingHours: cfg.EnforceWorkingHours,
	}
	scheduleService := &availability.DefaultScheduleService{
		Store:  store,
		Engine: engine,
		Events: dispatcher,
		Logger: logger.Named("schedule"),
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Appointments: repos.appointments,
		Doctors:      repos.doctors,
		Users:        repos.users,
		Guard:        guard,
		Events:       dispatcher,
		Logger:       logger.Named("appointment"),
	}
	reviewService := &review.DefaultReviewService{
		Appointments: repos.appointments,
		Users:        repos.users,
		Logger:       logger.Named("review"),
	}

	resolver := newResolver(ctx, cfg, app, logger)

	handlerBundle := handlers.NewHandlerBundle(
		resolver,
		handlers.NewScheduleHandler(scheduleService),
		handlers.NewAppointmentHandler(appointmentService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewDashboardHandler(dashboardService),
	)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.HTTPMetrics(httpMetrics))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, reg)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if amqpConn != nil {
		_ = amqpConn.Close()
	}
	database.Close(shutdownCtx)

	logger.Sugar().Info("main: server stopped gracefully")
}

// openStore connects the configured document store and builds its repositories.
func openStore(ctx context.Context, cfg config.Config, app *firebase.App, logger *zap.Logger) (repositories, []utils.HealthCheck) {
	if cfg.StoreDriver == config.StoreDriverFirestore {
		database.InitFirestore(ctx, app)
		return repositories{
			doctors:      doctorRepo.NewFirestoreDoctorRepo(),
			appointments: appointmentRepo.NewFirestoreAppointmentRepo(),
			users:        userRepo.NewFirestoreUserRepo(),
		}, nil
	}

	database.InitDB()
	doctors, err := doctorRepo.NewMongoDoctorRepo()
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	appts, err := appointmentRepo.NewMongoAppointmentRepo()
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	users, err := userRepo.NewMongoUserRepo()
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	return repositories{doctors: doctors, appointments: appts, users: users},
		[]utils.HealthCheck{utils.MongoCheck(database.MongoClient)}
}

// dialAMQP returns nil when AMQP_URL is unset or the broker is unreachable.
func dialAMQP(cfg config.Config, logger *zap.Logger) *amqp.Connection {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, change events stay in-process")
		return nil
	}
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, change events stay in-process", zap.Error(err))
		return nil
	}
	return conn
}

func newResolver(ctx context.Context, cfg config.Config, app *firebase.App, logger *zap.Logger) identity.Resolver {
	if cfg.IdentityMode != config.IdentityModeFirebase {
		return identity.StaticResolver{DoctorUserID: cfg.DoctorUserID}
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to create Firebase auth client: %v", err)
	}
	return identity.FirebaseResolver{Verifier: authClient}
}
