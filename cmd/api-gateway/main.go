package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campushub/campus-hub-api/api/swagger"
	"github.com/campushub/campus-hub-api/internal/handler"
	internalmiddleware "github.com/campushub/campus-hub-api/internal/middleware"
	"github.com/campushub/campus-hub-api/internal/repository"
	"github.com/campushub/campus-hub-api/internal/service"
	"github.com/campushub/campus-hub-api/pkg/busy"
	"github.com/campushub/campus-hub-api/pkg/cache"
	"github.com/campushub/campus-hub-api/pkg/config"
	"github.com/campushub/campus-hub-api/pkg/database"
	"github.com/campushub/campus-hub-api/pkg/docstore/pgstore"
	"github.com/campushub/campus-hub-api/pkg/jobs"
	"github.com/campushub/campus-hub-api/pkg/logger"
	corsmiddleware "github.com/campushub/campus-hub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushub/campus-hub-api/pkg/middleware/requestid"
)

// @title Campus Hub API
// @version 1.0.0
// @description Student management backend: students, courses, enrollments, grades and notifications.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	store := pgstore.New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		logr.Fatal("failed to ensure document schema", zap.Error(err))
	}

	students := repository.NewStudentRepository(store)
	professors := repository.NewProfessorRepository(store)
	courses := repository.NewCourseRepository(store)
	enrollments := repository.NewEnrollmentRepository(store)
	grades := repository.NewGradeRepository(store)
	notifications := repository.NewNotificationRepository(store)
	calendar := repository.NewCalendarRepository(store)
	meta := repository.NewMetaRepository(store)

	metricsSvc := service.NewMetricsService()
	tracker := busy.NewTracker()
	validate := service.NewValidator()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	notifier := service.NewGradeNotifier(notifications, students, courses, logr)
	retryQueue := jobs.NewQueue("grade-notifications", notifier.HandleRetry, jobs.QueueConfig{
		Workers:    cfg.Notifications.RetryWorkers,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	retryQueue.Start(ctx)
	defer retryQueue.Stop()
	notifier.AttachQueue(retryQueue)

	if cfg.Seed.Enabled {
		seed := service.NewSeedService(students, professors, courses, enrollments, notifications, meta, logr)
		seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		if err := seed.Run(seedCtx); err != nil {
			logr.Error("seed pass failed", zap.Error(err))
		}
		cancel()
	}

	studentSvc := service.NewStudentService(students, validate, logr)
	professorSvc := service.NewProfessorService(professors, validate, logr)
	courseSvc := service.NewCourseService(courses, professors, enrollments, students, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollments, students, courses, validate, logr)
	gradeSvc := service.NewGradeService(grades, notifier, validate, logr)
	notificationSvc := service.NewNotificationService(notifications, validate, logr)
	if cacheSvc != nil {
		gradeSvc.AttachCache(cacheSvc)
		notificationSvc.AttachCache(cacheSvc)
	}
	scheduleSvc := service.NewScheduleService(calendar, validate, logr)

	var dashboardCache interface {
		Get(ctx context.Context, key string, dest interface{}) error
		Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	}
	if cacheSvc != nil {
		dashboardCache = cacheSvc
	}
	dashboardSvc := service.NewDashboardService(notifications, grades, courses, dashboardCache, tracker, service.DashboardConfig{
		RecentLimit: cfg.Dashboard.RecentLimit,
		CacheTTL:    cfg.Dashboard.CacheTTL,
	}, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		exportSvc = service.NewExportService(students, nil, nil, logr)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, handler.Handlers{
		Students:      handler.NewStudentHandler(studentSvc, exportSvc),
		Professors:    handler.NewProfessorHandler(professorSvc),
		Courses:       handler.NewCourseHandler(courseSvc),
		Enrollments:   handler.NewEnrollmentHandler(enrollmentSvc),
		Grades:        handler.NewGradeHandler(gradeSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Schedule:      handler.NewScheduleHandler(scheduleSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Metrics:       handler.NewMetricsHandler(metricsSvc, tracker),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
