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
	"go.uber.org/zap"

	_ "github.com/noah-isme/music-school-api/api/swagger"
	"github.com/noah-isme/music-school-api/internal/handler"
	"github.com/noah-isme/music-school-api/internal/repository"
	"github.com/noah-isme/music-school-api/internal/router"
	"github.com/noah-isme/music-school-api/internal/service"
	"github.com/noah-isme/music-school-api/pkg/cache"
	"github.com/noah-isme/music-school-api/pkg/config"
	"github.com/noah-isme/music-school-api/pkg/database"
	"github.com/noah-isme/music-school-api/pkg/logger"
)

// @title Music School API
// @version 1.0.0
// @description Accounts, class catalog and enrollment for the music school
// @BasePath /
// @schemes http
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

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(cfg.Database.URL()); err != nil {
			logr.Fatal("migrations failed", zap.Error(err))
		}
		logr.Info("migrations applied")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis, cfg.Cache.Enabled)
	if err != nil {
		logr.Warn("redis unavailable, ranking cache disabled", zap.Error(err))
		redisClient = nil
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	selectionRepo := repository.NewSelectedClassRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, "music:", logr)
	defer cacheRepo.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)
	tokenSvc := service.NewTokenService(validate, logr, service.TokenConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	roleResolver := service.NewRoleResolver(userRepo, logr)
	userSvc := service.NewUserService(userRepo, validate, metrics, logr)
	classSvc := service.NewClassService(classRepo, cacheSvc, metrics, validate, cfg.Ranking.DefaultLimit, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, cacheSvc, cfg.Ranking.DefaultLimit, logr)
	selectionSvc := service.NewSelectedClassService(selectionRepo, validate, metrics, service.SelectedClassConfig{
		UniqueSelection: cfg.Enrollment.UniqueSelection,
	}, logr)
	rosterSvc := service.NewRosterService(classSvc, selectionSvc, metrics, logr)

	engine := router.New(router.Handlers{
		Auth:          handler.NewAuthHandler(tokenSvc),
		User:          handler.NewUserHandler(userSvc, roleResolver),
		Instructor:    handler.NewInstructorHandler(instructorSvc),
		Class:         handler.NewClassHandler(classSvc, rosterSvc),
		SelectedClass: handler.NewSelectedClassHandler(selectionSvc),
		Metrics:       handler.NewMetricsHandler(metrics, db),
	}, router.Guards{
		Tokens: tokenSvc,
		Roles:  roleResolver,
		Audit:  auditRepo,
	}, router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Metrics:        metrics,
		Logger:         logr,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
