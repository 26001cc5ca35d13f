package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"rsvp-lab/clock"
	httptransport "rsvp-lab/infrastructure/http"
	"rsvp-lab/infrastructure/storage"
	"rsvp-lab/internal"
	"rsvp-lab/services"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "RSVP server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Every defer (Badger, SQLite) runs before the exit code reaches main.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Keyed store (BadgerDB) for the ledger and the counters
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if config.DebugInspectorPort != nil {
		endpoint := "/inspect"
		inspector := internal.StartDebugServer(db, *config.DebugInspectorPort, endpoint, logger)
		logger.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", *config.DebugInspectorPort, endpoint))
		defer func() { _ = inspector.Close() }()
	}

	// 3. Event store (SQLite), read only
	eventsDB, err := storage.OpenEventStore(config.EventsDSN)
	if err != nil {
		return exitRuntime, fmt.Errorf("event store opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing event store...")
		_ = eventsDB.Close()
	}()

	// 4. Services
	rsvpRepository := storage.NewRSVPRepository(db, logger, config.TxnMaxBackoff)
	eventRepository := storage.NewEventRepository(eventsDB, logger)
	rsvpService := services.NewRSVPService(rsvpRepository, clock.NewSystem(), logger, config.StoreTimeout)
	eventService := services.NewEventService(eventRepository, logger)

	router := httptransport.NewRouter(httptransport.Services{
		RSVP:   rsvpService,
		Events: eventService,
	}, config.Origins(), logger)

	server := &http.Server{
		Addr:              config.Address(),
		Handler:           router,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", config.Address(), "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 7. Graceful Shutdown, in-flight requests finish before the stores close
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.INFO)
}
