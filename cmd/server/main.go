package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/bankstatement/internal/adapter/http"
	"github.com/iho/bankstatement/internal/adapter/http/handler"
	"github.com/iho/bankstatement/internal/adapter/http/middleware"
	"github.com/iho/bankstatement/internal/adapter/idgen"
	"github.com/iho/bankstatement/internal/adapter/printer"
	"github.com/iho/bankstatement/internal/domain"
	"github.com/iho/bankstatement/internal/infrastructure/clock"
	"github.com/iho/bankstatement/internal/infrastructure/config"
	"github.com/iho/bankstatement/internal/infrastructure/logger"
	"github.com/iho/bankstatement/internal/infrastructure/metrics"
	"github.com/iho/bankstatement/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	log.Logger = l

	appCtx, stop := context.WithCancel(context.Background())
	defer stop()

	router, err := newRouter(appCtx, cfg, l, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newRouter wires the in-memory account behind the HTTP API. Statements
// printed through the use case go to stdout. Background work started here
// stops with ctx.
func newRouter(ctx context.Context, cfg *config.Config, l zerolog.Logger, reg prometheus.Registerer) (http.Handler, error) {
	clk, err := newClock(cfg)
	if err != nil {
		return nil, err
	}

	var recorder usecase.MetricsRecorder
	if cfg.MetricsEnabled {
		recorder = metrics.New(reg)
	}

	accountUC := usecase.NewAccountUseCase(
		domain.NewLedger(),
		clk,
		printer.NewLineWriter(os.Stdout),
		idgen.NewULIDGenerator(),
		recorder,
		l,
	)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		go limiter.Run(ctx, cfg.RateLimitIdle, cfg.RateLimitIdle)
	}

	return httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:    handler.NewAccountHandler(accountUC),
		HealthHandler:     handler.NewHealthHandler(accountUC),
		Logger:            l,
		RateLimiter:       limiter,
		MetricsEnabled:    cfg.MetricsEnabled,
		TrustProxyHeaders: cfg.HTTPTrustProxy,
	}), nil
}

// newClock pins the date when CLOCK_FIXED_DATE is set and otherwise reads
// the wall clock in CLOCK_TIMEZONE.
func newClock(cfg *config.Config) (usecase.Clock, error) {
	date, fixed, err := cfg.FixedDate()
	if err != nil {
		return nil, err
	}
	if fixed {
		return clock.NewFixed(date), nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return clock.NewSystem(loc), nil
}
