package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/campus-case-forecast/internal/adapter/caseweb"
	httpadapter "github.com/couchcryptid/campus-case-forecast/internal/adapter/http"
	"github.com/couchcryptid/campus-case-forecast/internal/config"
	"github.com/couchcryptid/campus-case-forecast/internal/forecast"
	"github.com/couchcryptid/campus-case-forecast/internal/observability"
	"github.com/couchcryptid/campus-case-forecast/internal/pipeline"
	"github.com/couchcryptid/campus-case-forecast/internal/scheduler"
	"github.com/couchcryptid/campus-case-forecast/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open prediction store", "error", err)
		os.Exit(1)
	}

	client := caseweb.NewClient(cfg.SourceURL, cfg.FetchTimeout, logger)
	extractor := caseweb.NewExtractor(clock, logger)

	p := pipeline.New(client, extractor, st,
		func() forecast.Model { return forecast.NewLinearTrend() },
		cfg.ForecastHorizonDays, logger, metrics)

	// A previous snapshot makes the service immediately useful to readers.
	if rows, err := st.Predictions(context.Background()); err == nil && len(rows) > 0 {
		p.MarkWarm()
		metrics.PredictionRows.Set(float64(len(rows)))
		logger.Info("existing prediction snapshot found", "rows", len(rows))
	}

	trigger := scheduler.Trigger{
		Mode:     scheduler.Mode(cfg.ScheduleMode),
		Hour:     cfg.ScheduleHour,
		Minute:   cfg.ScheduleMinute,
		Interval: cfg.ScheduleInterval,
		Location: cfg.Timezone,
	}
	sched, err := scheduler.New(clock, trigger, p.Run, logger)
	if err != nil {
		logger.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, st, cfg.PercentChangeWindowDays, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := sched.Run(ctx); err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := st.Close(); err != nil {
		logger.Error("prediction store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
