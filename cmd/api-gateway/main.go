package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/verticx-api/api/swagger"
	"github.com/noah-isme/verticx-api/internal/handler"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/repository"
	"github.com/noah-isme/verticx-api/internal/service"
	"github.com/noah-isme/verticx-api/pkg/cache"
	"github.com/noah-isme/verticx-api/pkg/config"
	"github.com/noah-isme/verticx-api/pkg/database"
	"github.com/noah-isme/verticx-api/pkg/events"
	"github.com/noah-isme/verticx-api/pkg/jobs"
	"github.com/noah-isme/verticx-api/pkg/logger"
)

// @title Verticx API
// @version 1.0.0
// @description School administration backend: attendance calendars, leave, change-request workflow and dashboards.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	deps := buildApp(cfg, db, redisClient, logr)
	deps.queue.Start(ctx)
	defer deps.queue.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, logr, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

type app struct {
	metrics        *service.MetricsService
	queue          *jobs.Queue
	auth           *service.AuthService
	authHandler    *handler.AuthHandler
	attendance     *handler.AttendanceHandler
	leaves         *handler.LeaveHandler
	changeRequests *handler.ChangeRequestHandler
	fees           *handler.FeeTemplateHandler
	syllabus       *handler.SyllabusHandler
	examMarks      *handler.ExamMarkHandler
	dashboard      *handler.DashboardHandler
	metricsHandler *handler.MetricsHandler
}

func buildApp(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, logr *zap.Logger) *app {
	validate := validator.New()
	metrics := service.NewMetricsService()
	bus := events.NewBus(logr)
	tx := database.NewTxManager(db)

	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	changeRepo := repository.NewChangeRequestRepository(db)
	feeRepo := repository.NewFeeTemplateRepository(db)
	syllabusRepo := repository.NewSyllabusRepository(db)
	examRepo := repository.NewExamMarkRepository(db)

	cacheSvc := service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metrics, cfg.Calendar.CacheTTL, logr, redisClient != nil)

	invalidation := service.NewInvalidationService(cacheSvc, nil, logr)
	queue := jobs.NewQueue("cache-invalidation", invalidation.Handle, jobs.QueueConfig{
		Workers:    cfg.Invalidation.Workers,
		MaxRetries: cfg.Invalidation.Retries,
		RetryDelay: cfg.Invalidation.RetryDelay,
		Logger:     logr,
	})
	invalidation.SetQueue(queue)
	invalidation.Subscribe(bus)

	guard := service.NewSubmissionGuard(nil, cfg.Workflow.SubmissionGuardTTL, logr)
	if locks := repository.NewSubmissionLockRepository(redisClient); locks != nil {
		guard = service.NewSubmissionGuard(locks, cfg.Workflow.SubmissionGuardTTL, logr)
	}

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	changeRequests := service.NewChangeRequestService(service.ChangeRequestServiceDeps{
		Repo: changeRepo,
		Targets: map[models.EntityType]service.ChangeTarget{
			models.EntityFeeTemplate:     service.NewFeeTemplateTarget(feeRepo),
			models.EntitySyllabusLecture: service.NewSyllabusTarget(syllabusRepo),
			models.EntityExamMark:        service.NewExamMarkTarget(examRepo),
			models.EntityAttendance:      service.NewAttendanceTarget(attendanceRepo),
		},
		Tx:        tx,
		Guard:     guard,
		Bus:       bus,
		Audit:     userRepo,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
	})

	attendance := service.NewAttendanceService(service.AttendanceServiceDeps{
		Repo:      attendanceRepo,
		Leaves:    leaveRepo,
		People:    userRepo,
		Tx:        tx,
		Cache:     cacheSvc,
		Bus:       bus,
		Audit:     userRepo,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		CacheTTL:  cfg.Calendar.CacheTTL,
	})
	leaves := service.NewLeaveService(leaveRepo, bus, userRepo, validate, logr)
	fees := service.NewFeeTemplateService(feeRepo, changeRequests, bus, userRepo, validate, logr)
	syllabus := service.NewSyllabusService(syllabusRepo, changeRequests, userRepo, validate, logr)
	examMarks := service.NewExamMarkService(examRepo, changeRequests, userRepo, validate, logr)
	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Requests:   changeRepo,
		Leaves:     leaveRepo,
		Fees:       feeRepo,
		Attendance: attendanceRepo,
		Calendars:  attendance,
		Cache:      cacheSvc,
		Logger:     logr,
		Config:     service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})

	var dbCheck handler.HealthCheck
	if db != nil {
		dbCheck = db.PingContext
	}
	health := handler.NewMetricsHandler(metrics, dbCheck)
	if redisClient != nil {
		health.WithCacheCheck(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}

	return &app{
		metrics:        metrics,
		queue:          queue,
		auth:           authSvc,
		authHandler:    handler.NewAuthHandler(authSvc),
		attendance:     handler.NewAttendanceHandler(attendance),
		leaves:         handler.NewLeaveHandler(leaves),
		changeRequests: handler.NewChangeRequestHandler(changeRequests),
		fees:           handler.NewFeeTemplateHandler(fees),
		syllabus:       handler.NewSyllabusHandler(syllabus),
		examMarks:      handler.NewExamMarkHandler(examMarks),
		dashboard:      handler.NewDashboardHandler(dashboard),
		metricsHandler: health,
	}
}
