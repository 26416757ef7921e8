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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/stemspark-api/api/swagger"
	"github.com/noah-isme/stemspark-api/internal/handler"
	"github.com/noah-isme/stemspark-api/internal/middleware"
	"github.com/noah-isme/stemspark-api/internal/repository"
	"github.com/noah-isme/stemspark-api/internal/service"
	"github.com/noah-isme/stemspark-api/pkg/cache"
	"github.com/noah-isme/stemspark-api/pkg/config"
	"github.com/noah-isme/stemspark-api/pkg/database"
	"github.com/noah-isme/stemspark-api/pkg/jobs"
	"github.com/noah-isme/stemspark-api/pkg/logger"
	"github.com/noah-isme/stemspark-api/pkg/mail"
	corsmiddleware "github.com/noah-isme/stemspark-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/stemspark-api/pkg/middleware/requestid"
	"github.com/noah-isme/stemspark-api/pkg/ratelimit"
)

// @title STEM Spark API
// @version 1.0.0
// @description Volunteer hours submission, review and reporting
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

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient := cache.NewOptionalRedis(ctx, cfg.Redis, logr)
	if redisClient != nil {
		defer redisClient.Close()
	}

	metricsSvc := service.NewMetricsService()

	profileRepo := repository.NewProfileRepository(db)
	hoursRepo := repository.NewVolunteerHoursRepository(db)
	sessionRepo := repository.NewTutoringSessionRepository(db)
	actionRepo := repository.NewAdminActionRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, "stemspark", logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.DefaultTTL, logr, cfg.Cache.Enabled && redisClient != nil)

	sender, err := mail.NewSender(cfg.Notifications, logr)
	if err != nil {
		logr.Fatal("failed to configure mail sender", zap.Error(err))
	}
	notificationSvc := service.NewNotificationService(sender, profileRepo, metricsSvc, cfg.Notifications.SiteURL, logr)
	notificationQueue := jobs.NewQueue("notifications", notificationSvc.Handle, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	notificationQueue.Start(ctx)
	notificationSvc.SetQueue(notificationQueue)
	metricsSvc.RegisterGauge("notification_queue_depth", "Notification jobs waiting for a worker", func() float64 {
		return float64(notificationQueue.Len())
	})

	tokenSvc := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	authzSvc := service.NewAdminAuthorizationService(profileRepo, logr)
	hoursSvc := service.NewVolunteerHoursService(
		hoursRepo,
		sessionRepo,
		profileRepo,
		authzSvc,
		validator.New(),
		logr,
		service.WithAdminActionRecorder(actionRepo),
		service.WithVolunteerNotifier(notificationSvc),
		service.WithVolunteerCache(cacheSvc, cfg.VolunteerHours.StatsCacheTTL),
		service.WithVolunteerMetrics(metricsSvc),
		service.WithEligibleRoles(cfg.VolunteerHours.EligibleRoles),
		service.WithPendingPageSize(cfg.VolunteerHours.PendingPageSize),
	)
	exportSvc := service.NewExportService(hoursSvc, nil, nil, logr)
	actionSvc := service.NewAdminActionService(actionRepo, logr)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		store := ratelimit.NewMemoryStore()
		if redisClient != nil {
			if shared, err := ratelimit.NewRedisStore(redisClient); err != nil {
				logr.Warn("redis rate limit store unavailable, using in-memory counters", zap.Error(err))
			} else {
				store = shared
			}
		}
		limiter = ratelimit.New(store, cfg.RateLimit.Rules, logr)
	}
	checks := map[string]handler.Pinger{"database": handler.PingFunc(db.PingContext)}
	if redisClient != nil {
		checks["redis"] = cacheRepo
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks, logr)
	hoursHandler := handler.NewVolunteerHoursHandler(hoursSvc, exportSvc)
	adminHandler := handler.NewAdminHandler(hoursSvc, actionSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Docs.Enabled && cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.RateLimit(limiter, "api", metricsSvc), middleware.JWT(tokenSvc))

	hours := api.Group("/volunteer-hours")
	hours.POST("", middleware.RateLimit(limiter, "volunteer", metricsSvc), hoursHandler.Submit)
	hours.GET("/me", hoursHandler.ListMine)
	hours.GET("/me/stats", hoursHandler.MyStats)
	hours.GET("/me/export", hoursHandler.ExportMine)
	hours.POST("/sessions/:sessionId", middleware.RateLimit(limiter, "volunteer", metricsSvc), hoursHandler.CreateFromSession)

	admin := api.Group("/admin", middleware.RequireAdmin(authzSvc))
	admin.GET("/volunteer-hours/pending", adminHandler.ListPending)
	admin.GET("/volunteer-hours/overview", adminHandler.Overview)
	admin.POST("/volunteer-hours/:id/approve", adminHandler.Approve)
	admin.POST("/volunteer-hours/:id/reject", adminHandler.Reject)
	admin.GET("/interns/:id/volunteer-hours", adminHandler.InternHours)
	admin.GET("/interns/:id/volunteer-hours/stats", adminHandler.InternStats)
	admin.GET("/action-logs", adminHandler.ActionLogs)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("http server shutdown failed", zap.Error(err))
	}
	if err := notificationQueue.Stop(shutdownCtx); err != nil {
		logr.Warn("notification queue did not drain", zap.Error(err))
	}
}
