package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendwise/internal/auth"
	"spendwise/internal/config"
	"spendwise/internal/handlers"
	"spendwise/internal/logging"
	"spendwise/internal/metrics"
	"spendwise/internal/middleware"
	"spendwise/internal/storage"
	"spendwise/web"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("graceful shutdown complete")
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := auth.NewSessions([]byte(cfg.SessionKey), cfg.SecureCookie)
	h := handlers.NewHandlers(db, sessions, web.Templates())
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(h, web.Static(), prometheus.DefaultRegisterer, limiter, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("db", cfg.DBPath).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		limiter.Cleanup(ctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		reportPoolStats(ctx, db, 15*time.Second)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// setupRouter builds the application handler. Static assets come from static;
// HTTP collectors are registered with reg.
func setupRouter(h *handlers.Handlers, static fs.FS, reg prometheus.Registerer, limiter *middleware.RateLimiter, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	prom := middleware.NewPrometheus(reg)
	r.Use(prom.Instrument)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static)))).Methods(http.MethodGet)
	if gatherer, ok := reg.(prometheus.Gatherer); ok {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	var limit func(http.Handler) http.Handler
	if limiter != nil {
		limit = limiter.Middleware
	}
	h.Register(r, limit)

	var handler http.Handler = r
	handler = middleware.SecurityHeaders(middleware.DefaultHeadersConfig())(handler)
	handler = middleware.Logging(logger)(handler)
	return handler
}

func reportPoolStats(ctx context.Context, db *storage.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		metrics.DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
