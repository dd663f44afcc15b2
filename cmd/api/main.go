// Package main is the entry point for the mileage logbook API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pkordes/mileage-logbook/internal/auth"
	"github.com/pkordes/mileage-logbook/internal/config"
	"github.com/pkordes/mileage-logbook/internal/handler"
	"github.com/pkordes/mileage-logbook/internal/i18n"
	"github.com/pkordes/mileage-logbook/internal/middleware"
	"github.com/pkordes/mileage-logbook/internal/notify"
	"github.com/pkordes/mileage-logbook/internal/repo"
	"github.com/pkordes/mileage-logbook/internal/service"
	"github.com/pkordes/mileage-logbook/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// Opening the store applies pending migrations and seeds the settings row.
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStore(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("store ready", "driver", cfg.StoreDriver)

	// --- Notifications ----------------------------------------------------
	var dispatchOpts []notify.Option
	if cfg.AMQPURL != "" {
		publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			slog.Error("failed to connect to AMQP broker", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		dispatchOpts = append(dispatchOpts, notify.WithSink(publisher))
		slog.Info("trip events published to AMQP", "exchange", cfg.AMQPExchange)
	}
	dispatcher := notify.NewDispatcher(cfg.WebhookTimeout, logger, dispatchOpts...)

	// --- Services ---------------------------------------------------------
	catalog := i18n.Default()
	authSvc, err := auth.NewService(cfg.AuthUsername, cfg.AuthPassword, cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		slog.Error("failed to configure authentication", "error", err)
		os.Exit(1)
	}

	server := handler.NewServer(handler.Deps{
		Trips:    service.NewTripService(store.Trips, store.Vehicles, store.Settings, dispatcher, logger),
		Summary:  service.NewSummaryService(store.Trips, store.Settings, time.Now),
		Vehicles: service.NewVehicleService(store.Vehicles, store.Settings),
		Settings: service.NewSettingsService(store.Settings, store.Vehicles, catalog),
		Export:   service.NewExportService(store.Trips),
		Auth:     authSvc,
		Messages: catalog,
		Store:    store,
		OpenAPI:  spec.OpenAPI,
		Logger:   logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", server.Routes(middleware.NewAuthHandler(authSvc, auth.ExtractBearer)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	// Requests are done; let notifications that are still in flight finish
	// before the store and the broker connection close.
	if err := dispatcher.Wait(ctx); err != nil {
		slog.Warn("notifications still pending at shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*repo.Store, error) {
	if cfg.StoreDriver == config.DriverPostgres {
		return repo.OpenPostgres(ctx, cfg.DatabaseURL, logger)
	}
	return repo.OpenSQLite(ctx, cfg.SQLitePath, logger)
}
