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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	httpapi "github.com/tbourn/go-bots-backend/internal/http"
	"github.com/tbourn/go-bots-backend/internal/observability"
	"github.com/tbourn/go-bots-backend/internal/repo"
	"github.com/tbourn/go-bots-backend/internal/sysutil"
)

const (
	probeTimeout    = 10 * time.Second
	janitorInterval = time.Hour
)

// Warm-up retry schedule: the delay doubles after each failed attempt up to
// the cap. Variables so tests can shrink them.
var (
	warmUpBackoff    = time.Second
	warmUpMaxBackoff = 30 * time.Second
)

// probeDB is the connectivity check behind warm-up.
var probeDB = repo.Probe

func newServeCmd(a *app) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			return a.serve(cmd, args)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

// serve runs the API until SIGINT/SIGTERM, then drains in-flight requests for
// up to SHUTDOWN_TIMEOUT. The listener does not wait for the database: the
// connectivity probe and schema migration run in the background.
func (a *app) serve(cmd *cobra.Command, _ []string) error {
	cfg := a.cfg
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version))
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	db, err := repo.Open(cfg.DB, sysutil.GormLogger(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer closeDB(db)

	go warmUp(ctx, db, cfg.DB.AutoMigrate)
	go runJanitor(ctx, db, janitorInterval)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("db_driver", cfg.DB.Driver).
			Str("api_base", cfg.APIBasePath).
			Msg("bots API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := shutdownOTel(sctx); err != nil {
		log.Warn().Err(err).Msg("tracer shutdown")
	}
	log.Info().Msg("server stopped")
	return nil
}

// warmUp reports database connectivity and, when enabled, migrates the
// schema. A failed probe or migration is logged and retried with backoff until
// it succeeds or ctx ends; the server keeps running either way. It reports
// whether the warm-up completed.
func warmUp(ctx context.Context, db *gorm.DB, migrate bool) bool {
	delay := warmUpBackoff
	for attempt := 1; ; attempt++ {
		err := warmUpOnce(ctx, db, migrate)
		if err == nil {
			return true
		}
		log.Error().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("database warm-up failed")

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			log.Warn().Msg("database warm-up abandoned")
			return false
		case <-t.C:
		}
		if delay *= 2; delay > warmUpMaxBackoff {
			delay = warmUpMaxBackoff
		}
	}
}

func warmUpOnce(ctx context.Context, db *gorm.DB, migrate bool) error {
	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	now, err := probeDB(pctx, db)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	log.Info().Str("db_time", now).Msg("database reachable")

	if !migrate {
		return nil
	}
	if err := repo.AutoMigrate(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	log.Info().Msg("schema up to date")
	return nil
}

// runJanitor purges expired idempotency keys every interval until ctx ends.
func runJanitor(ctx context.Context, db *gorm.DB, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			purgeExpired(ctx, db, now.UTC())
		}
	}
}

func purgeExpired(ctx context.Context, db *gorm.DB, now time.Time) int64 {
	n, err := repo.PurgeIdempotency(ctx, db, now)
	if err != nil {
		log.Warn().Err(err).Msg("idempotency purge failed")
		return 0
	}
	if n > 0 {
		log.Debug().Int64("purged", n).Msg("expired idempotency keys removed")
	}
	return n
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}
