package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fittrack/internal/analytics"
	"alcyxob/fittrack/internal/api"
	"alcyxob/fittrack/internal/catalog"
	"alcyxob/fittrack/internal/config"
	"alcyxob/fittrack/internal/logging"
	"alcyxob/fittrack/internal/metrics"
	"alcyxob/fittrack/internal/notify"
	"alcyxob/fittrack/internal/repository/mongo"
	"alcyxob/fittrack/internal/service"
	"alcyxob/fittrack/internal/storage"
	"alcyxob/fittrack/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// @title FitTrack API
// @version 1.0
// @description Meal and workout logging with progress analytics and in-app notifications.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Println("starting fittrack server...")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatalf("invalid timezone: %s", err)
	}

	// --- Database Connection ---
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	dbClient, err := mongo.ConnectDB(connectCtx, cfg.Database.URI)
	cancelConnect()
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %s", err)
	}
	defer func() {
		log.Println("disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Printf("connected to database %s", cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.Errorf("index creation incomplete: %s", err)
			return
		}
		log.Println("index creation completed")
	}()

	// --- Exercise catalog ---
	exercises, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("could not load exercise catalog: %s", err)
	}
	log.Printf("exercise catalog loaded with %d entries", exercises.Len())

	// --- Metrics ---
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager("fittrack", "server", promRegistry)

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	mealRepo := mongo.NewMongoMealRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	weightRepo := mongo.NewMongoBodyWeightRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)

	// --- Notification engine ---
	executor := worker.NewExecutor(context.Background(), worker.Config{
		PoolSize:    cfg.App.WorkerPoolSize,
		TaskTimeout: cfg.App.TaskTimeout,
	}, metricsManager)

	aggregator := analytics.NewAggregator(service.NewLogReader(mealRepo, workoutRepo), loc, time.Now)
	engine := notify.NewEngine(notify.Deps{
		Aggregator:    aggregator,
		Users:         userRepo,
		Weights:       weightRepo,
		Meals:         mealRepo,
		Workouts:      workoutRepo,
		Notifications: notificationRepo,
		Scheduler:     executor,
		Metrics:       metricsManager,
		Location:      loc,
		Now:           time.Now,
		ReminderDelay: cfg.App.ReminderDelay,
	})

	// --- Services ---
	authService := service.NewAuthService(userRepo, engine, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo)
	logService := service.NewLogService(mealRepo, workoutRepo, weightRepo, exercises, engine, metricsManager, loc, time.Now)
	templateService := service.NewTemplateService(templateRepo, logService)
	notificationService := service.NewNotificationService(notificationRepo, engine, time.Now)
	insightsService := service.NewInsightsService(aggregator)

	// --- Gin ---
	if !cfg.Log.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, cfg.JWT.Secret, promRegistry, metricsManager,
		authService, userService, logService, templateService, notificationService, insightsService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}

	// Pending reminders are dropped; running ones finish first.
	executor.Stop()
	log.Println("server exiting")
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.S3Key == "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := storage.NewS3Storage(ctx, cfg.S3)
	if err != nil {
		return nil, err
	}
	return catalog.LoadFromStorage(ctx, store, cfg.Catalog.S3Key)
}
