/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the accrual engine HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (defaults, .env, ACCRUAL_* environment)
  2. Apply command-line flag overrides
  3. Initialize zerolog (ACCRUAL_LOG_* already apply to step 1 errors)
  4. Initialize SQLite holiday store
  5. Create API handler and router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port       HTTP server port (default: ACCRUAL_PORT or 8080)
  -db         SQLite database path (default: ACCRUAL_DB_PATH or accrual.db)
              Use ":memory:" for in-memory database
  -range-min  Earliest representable date (default: 0001-01-01)
  -range-max  Latest representable date (default: 9999-12-31)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  ./server -db="./data/calendars.db"
  ./server -db=":memory:" -port=3000
  ACCRUAL_RANGE_MIN=1900-01-01 ./server

SEE ALSO:
  - config/config.go: Configuration keys
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/accrual-engine/api"
	"github.com/warp/accrual-engine/config"
	"github.com/warp/accrual-engine/logger"
	"github.com/warp/accrual-engine/store/sqlite"
)

func main() {
	boot := config.BootstrapLog()
	logger.InitWith(boot.Level, boot.Pretty)

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to load configuration")
	}

	// Flags override configuration
	port := flag.Int("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	rangeMin := flag.String("range-min", cfg.Range.Min.String(), "earliest representable date")
	rangeMax := flag.String("range-max", cfg.Range.Max.String(), "latest representable date")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.DBPath = *dbPath
	if cfg.Range, err = config.ParseRange(*rangeMin, *rangeMax); err != nil {
		logger.L().Fatal().Err(err).Msg("invalid date range")
	}
	if err := cfg.Validate(); err != nil {
		logger.L().Fatal().Err(err).Msg("invalid configuration")
	}

	logger.InitWith(cfg.Log.Level, cfg.Log.Pretty)
	log := logger.L()

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("failed to initialize database")
	}
	defer store.Close()

	handler := api.NewHandler(store, cfg.Range)
	router := api.NewRouter(handler, cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Int("port", cfg.Server.Port).
			Str("db", cfg.DBPath).
			Str("range_min", cfg.Range.Min.String()).
			Str("range_max", cfg.Range.Max.String()).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server stopped")
}
