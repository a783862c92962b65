package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/martinsvarc/teamtables/internal/aggregator"
	"github.com/martinsvarc/teamtables/internal/api"
	"github.com/martinsvarc/teamtables/internal/auth"
	"github.com/martinsvarc/teamtables/internal/clock"
	"github.com/martinsvarc/teamtables/internal/config"
	"github.com/martinsvarc/teamtables/internal/ingest"
	"github.com/martinsvarc/teamtables/internal/metrics"
	"github.com/martinsvarc/teamtables/internal/storage"
	"github.com/martinsvarc/teamtables/internal/websocket"
	"github.com/martinsvarc/teamtables/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Str("reference_timezone", cfg.ReferenceTimezone.String()).
		Str("week_start", cfg.WeekStart.String()).
		Msg("starting teamtables server")

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create storage (DynamoDB, falls back to in-memory when unconfigured)
	store, err := storage.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// Create WebSocket hub
	hub := websocket.NewHub(log.Logger)
	go hub.Run()

	// Create WebSocket handler
	wsHandler := websocket.NewHandler(hub, cfg, log.Logger)

	// Create record receiver
	receiver := ingest.NewReceiver(store, hub, log.Logger)

	// Create aggregation service
	refClock := clock.New(cfg.ReferenceTimezone, cfg.WeekStart)
	aggregatorService := aggregator.NewService(store, refClock, cfg.RecentCallsLimit, log.Logger)

	// Create API handlers
	summaryHandler := api.NewTeamSummaryHandler(aggregatorService, log.Logger)
	adminHandler := api.NewAdminHandler(store, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes (no auth required)
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())

	// Internal routes (no auth - for the scoring pipeline and operators)
	r.Route("/internal", func(r chi.Router) {
		r.Post("/call-records", receiver.HandleCallRecord)
		r.Get("/call-records/stats", receiver.GetStats)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Use(api.RequireAdmin)
			r.Post("/admin/reset", adminHandler.ResetData)
		})
	})

	// Add auth middleware for protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Get("/api/call-records", summaryHandler.GetTeamSummary)
		r.Get("/api/call-records/user", summaryHandler.GetUserSummary)
		r.Get("/ws", wsHandler.ServeHTTP)
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"teamtables"}`)
}
