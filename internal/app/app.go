package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/controller"
	"jaagrmind_backend/internal/repository"
	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/pkg/database"
	"jaagrmind_backend/pkg/logger"
	"jaagrmind_backend/pkg/monitoring"
	"jaagrmind_backend/pkg/security"
	"jaagrmind_backend/pkg/tracing"

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
	user       *repository.UserRepository
	school     *repository.SchoolRepository
	student    *repository.StudentRepository
	assessment *repository.AssessmentRepository
	submission *repository.SubmissionRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	school     *service.SchoolService
	student    *service.StudentService
	assessment *service.AssessmentService
	submission *service.SubmissionService
	analytics  *service.AnalyticsService
}

type controllers struct {
	auth       *controller.AuthController
	school     *controller.SchoolController
	student    *controller.StudentController
	assessment *controller.AssessmentController
	submission *controller.SubmissionController
	analytics  *controller.AnalyticsController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		school:     repository.NewSchoolRepository(db),
		student:    repository.NewStudentRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	classifier, err := service.NewClassifier(cfg.Scoring)
	if err != nil {
		logger.Log.Fatal("Invalid scoring thresholds", zap.Error(err))
	}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.school, repos.student, cfg)
	s.school = service.NewSchoolService(repos.school, repos.user)
	s.student = service.NewStudentService(repos.student, repos.school)
	s.assessment = service.NewAssessmentService(repos.assessment)
	s.submission = service.NewSubmissionService(repos.submission, repos.assessment, repos.student, classifier)
	s.analytics = service.NewAnalyticsService(repos.submission, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		school:     controller.NewSchoolController(s.school, s.storage),
		student:    controller.NewStudentController(s.student),
		assessment: controller.NewAssessmentController(s.assessment),
		submission: controller.NewSubmissionController(s.submission),
		analytics:  controller.NewAnalyticsController(s.analytics),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("jaagrmind-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ApplyConfig picks up the reloadable settings from a fresh config read.
// A reload with broken thresholds is dropped; the running classifier stays.
func (a *App) ApplyConfig(cfg *config.Config) {
	classifier, err := service.NewClassifier(cfg.Scoring)
	if err != nil {
		logger.Log.Error("Ignoring reloaded config: invalid scoring thresholds", zap.Error(err))
		return
	}
	a.services.submission.SetClassifier(classifier)
	a.Config.Scoring = cfg.Scoring
	a.Config.Analytics = cfg.Analytics
	logger.Log.Info("Scoring thresholds reloaded",
		zap.Float64("stableMinFraction", cfg.Scoring.StableMinFraction),
		zap.Float64("emergingMinFraction", cfg.Scoring.EmergingMinFraction))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
