// Package http exposes health, metrics, and the JSON endpoints the
// presentation layer reads: summary metrics, the canonical series, and the
// persisted prediction snapshot.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
	"github.com/couchcryptid/campus-case-forecast/internal/store"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SeriesProvider supplies the current canonical series, re-fetched from the
// source per call.
type SeriesProvider interface {
	CurrentSeries(ctx context.Context) (domain.Series, error)
}

// PredictionReader reads the last persisted prediction snapshot wholesale.
type PredictionReader interface {
	Predictions(ctx context.Context) ([]store.PredictionRecord, error)
}

// Server exposes the service's HTTP surface.
type Server struct {
	httpServer *http.Server
	series     SeriesProvider
	predict    PredictionReader
	window     int
	logger     *slog.Logger
}

// NewServer creates the HTTP server. window is the default percent-change
// trailing window in days.
func NewServer(addr string, ready ReadinessChecker, series SeriesProvider,
	predict PredictionReader, window int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		series:  series,
		predict: predict,
		window:  window,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/summary", s.handleSummary)
	mux.HandleFunc("GET /api/v1/series", s.handleSeries)
	mux.HandleFunc("GET /api/v1/predictions", s.handlePredictions)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checker.CheckReadiness(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// locationSummary is the per-location payload of /api/v1/summary.
type locationSummary struct {
	Location      string             `json:"location"`
	TotalCases    int                `json:"total_cases"`
	LatestDaily   string             `json:"latest_daily,omitempty"`
	PercentChange *float64           `json:"percent_change,omitempty"`
	Trend         string             `json:"trend,omitempty"`
	DailyAverages map[string]float64 `json:"daily_averages"`
	Comparison    string             `json:"comparison,omitempty"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	series, err := s.series.CurrentSeries(r.Context())
	if err != nil {
		s.logger.Error("summary: series fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "source unavailable"})
		return
	}

	summaries := make([]locationSummary, 0, len(domain.ForecastLocations))
	for _, loc := range domain.ForecastLocations {
		locSeries := series.ForLocation(loc)

		sum := locationSummary{
			Location:      string(loc),
			TotalCases:    domain.TotalCases(locSeries),
			DailyAverages: map[string]float64{},
		}

		if latest, err := domain.LatestDailySummary(locSeries); err == nil {
			sum.LatestDaily = latest
		}
		if pc, err := domain.PercentChange(locSeries, s.window); err == nil {
			sum.PercentChange = &pc.Change
			sum.Trend = pc.Status
		} else {
			s.logger.Warn("summary: percent change unavailable", "location", loc, "error", err)
		}

		avgs := domain.DailyAverages(locSeries)
		for cat, avg := range avgs {
			sum.DailyAverages[string(cat)] = avg
		}
		sum.Comparison = domain.AverageComparison(
			avgs[domain.CategoryStudent], avgs[domain.CategoryEmployee], string(loc))

		summaries = append(summaries, sum)
	}

	writeJSON(w, http.StatusOK, map[string]any{"locations": summaries})
}

type seriesEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	series, err := s.series.CurrentSeries(r.Context())
	if err != nil {
		s.logger.Error("series: fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "source unavailable"})
		return
	}

	out := make(map[string][]seriesEntry, len(domain.ForecastLocations))
	for _, loc := range domain.ForecastLocations {
		daily := series.ForLocation(loc).DailyTotals()
		entries := make([]seriesEntry, 0, len(daily))
		for _, d := range daily {
			entries = append(entries, seriesEntry{Date: d.Date.Format("2006-01-02"), Count: d.Count})
		}
		out[string(loc)] = entries
	}

	writeJSON(w, http.StatusOK, map[string]any{"series": out})
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.predict.Predictions(r.Context())
	if err != nil {
		s.logger.Error("predictions: read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "prediction store unavailable"})
		return
	}

	if len(rows) == 0 {
		// Explicit no-data state, never a zero-filled table.
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no prediction available"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"predictions": rows})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
