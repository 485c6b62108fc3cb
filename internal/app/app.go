package app

import (
	"context"
	"fitacademy_backend/internal/config"
	"fitacademy_backend/internal/controller"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/internal/service"
	"fitacademy_backend/pkg/configwatcher"
	"fitacademy_backend/pkg/database"
	"fitacademy_backend/pkg/logger"
	"fitacademy_backend/pkg/monitoring"
	"fitacademy_backend/pkg/security"
	"fitacademy_backend/pkg/tracing"
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
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	course   *repository.CourseRepository
	enroll   *repository.EnrollmentRepository
	progress *repository.TopicProgressRepository
	blog     *repository.BlogRepository
	program  *repository.ProgramRepository
	trainer  *repository.TrainerRepository
	gallery  *repository.GalleryRepository
	contact  *repository.ContactRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	user       *service.UserService
	course     *service.CourseService
	enrollment *service.EnrollmentService
	progress   *service.ProgressService
	blog       *service.BlogService
	program    *service.ProgramService
	trainer    *service.TrainerService
	gallery    *service.GalleryService
	contact    *service.ContactService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	enrollment *controller.EnrollmentController
	blog       *controller.BlogController
	program    *controller.ProgramController
	trainer    *controller.TrainerController
	gallery    *controller.GalleryController
	contact    *controller.ContactController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		course:   repository.NewCourseRepository(db),
		enroll:   repository.NewEnrollmentRepository(db),
		progress: repository.NewTopicProgressRepository(db),
		blog:     repository.NewBlogRepository(db),
		program:  repository.NewProgramRepository(db),
		trainer:  repository.NewTrainerRepository(db),
		gallery:  repository.NewGalleryRepository(db),
		contact:  repository.NewContactRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.course = service.NewCourseService(repos.course, repos.progress, rdb)
	s.enrollment = service.NewEnrollmentService(repos.enroll, repos.course, s.storage)
	s.progress = service.NewProgressService(repos.enroll, repos.progress, s.course)
	s.blog = service.NewBlogService(repos.blog, s.storage)
	s.program = service.NewProgramService(repos.program)
	s.trainer = service.NewTrainerService(repos.trainer, s.storage)
	s.gallery = service.NewGalleryService(repos.gallery, s.storage)
	s.contact = service.NewContactService(repos.contact)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		course:     controller.NewCourseController(s.course),
		enrollment: controller.NewEnrollmentController(s.enrollment, s.course, s.progress),
		blog:       controller.NewBlogController(s.blog),
		program:    controller.NewProgramController(s.program),
		trainer:    controller.NewTrainerController(s.trainer),
		gallery:    controller.NewGalleryController(s.gallery),
		contact:    controller.NewContactController(s.contact),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
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

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 只承担缓存，连不上时降级为直查数据库
		logger.Log.Warn("Redis unavailable, course cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("fitacademy-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：仅覆盖重启代价高的运行时字段
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		loaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		cfg.JWT.Secret = loaded.JWT.Secret
		cfg.JWT.ExpireTime = loaded.JWT.ExpireTime
		logger.Log.Info("Config reloaded")
	})

	return app
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
