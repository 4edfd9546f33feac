// @title        Auth Service API
// @version      1.0
// @description  Username/password authentication issuing access and refresh tokens with role-gated endpoints.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hydrostat/auth-service/internal/api"
	"github.com/hydrostat/auth-service/internal/core/domain"
	"github.com/hydrostat/auth-service/internal/core/service"
	"github.com/hydrostat/auth-service/internal/infrastructure/audit"
	"github.com/hydrostat/auth-service/internal/infrastructure/config"
	mongodb "github.com/hydrostat/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/hydrostat/auth-service/internal/infrastructure/db/redis"
	"github.com/hydrostat/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Audit trail ---
	dispatcher := audit.NewDispatcher(0, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)
	defer dispatcher.Close()

	// --- Core services ---
	codec := service.NewJWTCodec(
		service.KindConfig{Secret: cfg.JWT.AccessSecret, TTL: cfg.JWT.AccessTTL},
		service.KindConfig{Secret: cfg.JWT.RefreshSecret, TTL: cfg.JWT.RefreshTTL},
	)
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(), codec, dispatcher, service.Limits{
		PasswordMinLen: cfg.Validate.PasswordMinLen,
		NameMinLen:     cfg.Validate.NameMinLen,
		DefaultRole:    domain.Role(cfg.Validate.DefaultRole),
	})
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle, log)

	// --- HTTP ---
	e := api.NewRouter(db, rdb, authService, throttle, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting auth service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
