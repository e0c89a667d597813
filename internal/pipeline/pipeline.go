// Package pipeline orchestrates a full run over the case-announcement
// source: fetch, extract, aggregate, forecast, persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
	"github.com/couchcryptid/campus-case-forecast/internal/forecast"
	"github.com/couchcryptid/campus-case-forecast/internal/observability"
)

// DocumentSource fetches the raw case-announcement page.
type DocumentSource interface {
	FetchPage(ctx context.Context) ([]byte, error)
}

// RecordExtractor turns page markup into case records.
type RecordExtractor interface {
	Extract(body []byte) ([]domain.CaseRecord, domain.ExtractStats, error)
}

// PredictionStore persists the merged prediction table by full replacement.
type PredictionStore interface {
	ReplacePredictions(ctx context.Context, rows []forecast.TableRow) error
}

// Pipeline runs the scrape-and-forecast cycle. The scheduler invokes Run at
// most once at a time; Run itself is sequential apart from the independent
// per-location model fits.
type Pipeline struct {
	source    DocumentSource
	extractor RecordExtractor
	store     PredictionStore
	newModel  func() forecast.Model
	horizon   int
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline forecasting horizon days past each location's last
// observed date.
func New(source DocumentSource, extractor RecordExtractor, store PredictionStore,
	newModel func() forecast.Model, horizon int,
	logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:    source,
		extractor: extractor,
		store:     store,
		newModel:  newModel,
		horizon:   horizon,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a run has succeeded, or after MarkWarm.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no forecast run has completed yet")
	}
	return nil
}

// MarkWarm declares the pipeline ready without a run, used at startup when
// the store already holds a previous snapshot.
func (p *Pipeline) MarkWarm() {
	p.ready.Store(true)
}

// Run executes one complete cycle. Any failure aborts the run before the
// persistence write, leaving the previous snapshot untouched.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	err := p.run(ctx, start)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		p.logger.Error("forecast run failed", "error", err, "duration", time.Since(start))
		return err
	}

	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.metrics.LastSuccess.SetToCurrentTime()
	p.ready.Store(true)
	return nil
}

func (p *Pipeline) run(ctx context.Context, start time.Time) error {
	series, stats, err := p.fetchSeries(ctx)
	if err != nil {
		return err
	}

	p.logger.Info("case page extracted",
		"records", stats.Parsed,
		"unclassified", stats.Unclassified,
		"count_defaults", stats.CountDefaulted,
	)

	forecasts, err := forecast.Run(ctx, series, p.horizon, p.newModel)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}

	table := forecast.Merge(forecasts)
	if len(table) == 0 {
		// Legal but suspicious: the per-location horizons did not overlap.
		p.logger.Warn("merged prediction table is empty")
	}

	if err := p.store.ReplacePredictions(ctx, table); err != nil {
		return fmt.Errorf("persist predictions: %w", err)
	}

	p.metrics.PredictionRows.Set(float64(len(table)))
	p.logger.Info("forecast run complete",
		"rows", len(table),
		"horizon_days", p.horizon,
		"duration", time.Since(start),
	)
	return nil
}

// CurrentSeries fetches and aggregates the source on demand. The page is
// re-fetched per call; nothing is cached across requests.
func (p *Pipeline) CurrentSeries(ctx context.Context) (domain.Series, error) {
	series, _, err := p.fetchSeries(ctx)
	return series, err
}

func (p *Pipeline) fetchSeries(ctx context.Context) (domain.Series, domain.ExtractStats, error) {
	fetchStart := time.Now()
	body, err := p.source.FetchPage(ctx)
	if err != nil {
		return nil, domain.ExtractStats{}, fmt.Errorf("fetch: %w", err)
	}
	p.metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())

	records, stats, err := p.extractor.Extract(body)
	if err != nil {
		return nil, domain.ExtractStats{}, fmt.Errorf("extract: %w", err)
	}

	p.metrics.RecordsParsed.Add(float64(stats.Parsed))
	p.metrics.RecordsUnclassified.Add(float64(stats.Unclassified))
	p.metrics.CountDefaults.Add(float64(stats.CountDefaulted))

	return domain.Aggregate(records), stats, nil
}
