package app

import (
	"academic_portal_backend/internal/config"
	"academic_portal_backend/internal/controller"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/service"
	"academic_portal_backend/pkg/database"
	"academic_portal_backend/pkg/logger"
	"academic_portal_backend/pkg/monitoring"
	"academic_portal_backend/pkg/security"
	"academic_portal_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user         *repository.UserRepository
	assignment   *repository.AssignmentRepository
	submission   *repository.SubmissionRepository
	quiz         *repository.QuizRepository
	quizAttempt  *repository.QuizAttemptRepository
	reflection   *repository.ReflectionRepository
	notification *repository.NotificationRepository
	portfolio    *repository.PortfolioRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	analytics    *service.AnalyticsService
	dashboard    *service.DashboardService
	assignment   *service.AssignmentService
	submission   *service.SubmissionService
	quiz         *service.QuizService
	reflection   *service.ReflectionService
	notification *service.NotificationService
	portfolio    *service.PortfolioService
	hub          *service.EventHub
	cache        *service.SnapshotCache
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	assignment   *controller.AssignmentController
	submission   *controller.SubmissionController
	quiz         *controller.QuizController
	reflection   *controller.ReflectionController
	notification *controller.NotificationController
	portfolio    *controller.PortfolioController
	analytics    *controller.AnalyticsController
	calendar     *controller.CalendarController
	upload       *controller.UploadController
	ws           *controller.WSController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		quiz:         repository.NewQuizRepository(db),
		quizAttempt:  repository.NewQuizAttemptRepository(db),
		reflection:   repository.NewReflectionRepository(db),
		notification: repository.NewNotificationRepository(db),
		portfolio:    repository.NewPortfolioRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.hub = service.NewEventHub(rdb)
	go s.hub.Run()

	cache := service.NewSnapshotCache(time.Duration(cfg.Analytics.CacheTTLSeconds) * time.Second)
	s.cache = cache

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	s.analytics = service.NewAnalyticsService(repos.user, repos.quizAttempt, repos.submission, repos.reflection, cache)
	s.dashboard = service.NewDashboardService(repos.user, repos.submission, repos.quizAttempt, s.analytics)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.notification, repos.user, s.hub)
	s.submission = service.NewSubmissionService(repos.submission, repos.assignment, repos.notification, s.analytics, s.hub)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizAttempt, s.analytics, s.hub)
	s.reflection = service.NewReflectionService(repos.reflection, s.hub)
	s.notification = service.NewNotificationService(repos.notification, s.hub)
	s.portfolio = service.NewPortfolioService(repos.portfolio, s.hub)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(repos.user),
		assignment:   controller.NewAssignmentController(s.assignment),
		submission:   controller.NewSubmissionController(s.submission),
		quiz:         controller.NewQuizController(s.quiz),
		reflection:   controller.NewReflectionController(s.reflection),
		notification: controller.NewNotificationController(s.notification),
		portfolio:    controller.NewPortfolioController(s.portfolio),
		analytics:    controller.NewAnalyticsController(s.analytics, s.dashboard),
		calendar:     controller.NewCalendarController(s.assignment),
		upload:       controller.NewUploadController(s.storage),
		ws:           controller.NewWSController(s.hub),
		health:       controller.NewHealthController(db, s.hub),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			s.cache.Sweep()
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Realtime fan-out degrades to single-instance delivery.
		logger.Log.Warn("redis unavailable, event relay disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)
	app.startBackgroundTasks(services)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	if a.services != nil && a.services.hub != nil {
		a.services.hub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	logger.Log.Info("server exiting")
}
