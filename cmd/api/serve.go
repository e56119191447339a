package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/careflow-api/internal/ai"
	"github.com/BruksfildServices01/careflow-api/internal/audit"
	"github.com/BruksfildServices01/careflow-api/internal/auth"
	"github.com/BruksfildServices01/careflow-api/internal/cache"
	"github.com/BruksfildServices01/careflow-api/internal/config"
	dbpkg "github.com/BruksfildServices01/careflow-api/internal/db"
	"github.com/BruksfildServices01/careflow-api/internal/infra/repository"
	"github.com/BruksfildServices01/careflow-api/internal/logging"
	"github.com/BruksfildServices01/careflow-api/internal/middleware"
	"github.com/BruksfildServices01/careflow-api/internal/routes"
	"github.com/BruksfildServices01/careflow-api/internal/storage"
)

const auditQueueSize = 256

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(config.Load())
		},
	}
}

func runServer(cfg *config.Config) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logging.Install(logger)

	ctx := context.Background()

	mongo, err := dbpkg.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeWithTimeout(logger, "mongodb", mongo.Close)

	// --------------------------------------------------
	// Audit trail
	// --------------------------------------------------

	auditDB, err := dbpkg.NewAuditDB(cfg.AuditDatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.CloseAuditDB(auditDB); err != nil {
			logger.Warn().Err(err).Msg("close audit database")
		}
	}()

	var sink audit.Sink = audit.NewLogSink(logger)
	if auditDB != nil {
		sink = audit.NewGormSink(auditDB)
	}
	dispatcher := audit.NewDispatcher(sink, auditQueueSize)
	defer closeWithTimeout(logger, "audit dispatcher", dispatcher.Close)

	// --------------------------------------------------
	// Redis (optional)
	// --------------------------------------------------

	var (
		denylist  auth.Denylist = auth.NewMemoryDenylist()
		termCache ai.Cache
		rdb       *redis.Client
	)
	if cfg.RedisURL != "" {
		rdb, err = cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()

		denylist = cache.NewDenylist(rdb)
		termCache = cache.NewStore(rdb, "careflow:terms:")
	}

	// --------------------------------------------------
	// Auth, storage, AI
	// --------------------------------------------------

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL, denylist)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg)
	if err != nil {
		return err
	}

	var gen ai.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return err
		}
		gen = g
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, AI endpoints return fallback content")
	}

	gateway := ai.NewGateway(gen, ai.Options{
		ReportModel: cfg.GeminiModel,
		TermModel:   cfg.GeminiTermModel,
		Timeout:     cfg.AITimeout,
		Cache:       termCache,
		CacheTTL:    cfg.AITermCacheTTL,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Close()

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------

	database := mongo.Database()
	r := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logger,
		Users:        repository.NewUserMongoRepository(database),
		Appointments: repository.NewAppointmentMongoRepository(database),
		DB:           mongo,
		Tokens:       tokens,
		Gateway:      gateway,
		Store:        store,
		AuditDB:      auditDB,
		Audit:        dispatcher,
		Limiter:      limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func closeWithTimeout(logger zerolog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := fn(ctx); err != nil {
		logger.Warn().Err(err).Str("component", name).Msg("close failed")
	}
}
