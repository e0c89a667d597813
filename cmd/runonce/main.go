// Command runonce executes a single forecast pipeline run against the live
// source (or a local HTML file) and prints the persisted prediction table.
// Operator tool for verifying a deployment without waiting for the schedule.
//
// Usage:
//
//	go run ./cmd/runonce -db predictions.db
//	go run ./cmd/runonce -file testdata/cases.html -db /tmp/predictions.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/campus-case-forecast/internal/adapter/caseweb"
	"github.com/couchcryptid/campus-case-forecast/internal/forecast"
	"github.com/couchcryptid/campus-case-forecast/internal/observability"
	"github.com/couchcryptid/campus-case-forecast/internal/pipeline"
	"github.com/couchcryptid/campus-case-forecast/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	sourceURL := flag.String("source-url", "https://www.usf.edu/coronavirus/updates/usf-cases.aspx", "case page URL")
	file := flag.String("file", "", "read the page from a local HTML file instead of fetching")
	dbPath := flag.String("db", "predictions.db", "prediction database path")
	horizon := flag.Int("horizon", 50, "forecast horizon in days")
	timeout := flag.Duration("timeout", 15*time.Second, "fetch timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	var source pipeline.DocumentSource
	if *file != "" {
		source = fileSource(*file)
	} else {
		source = caseweb.NewClient(*sourceURL, *timeout, logger)
	}

	p := pipeline.New(source, caseweb.NewExtractor(clock, logger), st,
		func() forecast.Model { return forecast.NewLinearTrend() },
		*horizon, logger, metrics)

	ctx := context.Background()
	if err := p.Run(ctx); err != nil {
		return err
	}

	rows, err := st.Predictions(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %14s %14s %14s\n", "DS", "YHAT_TAMPA", "YHAT_ST_PETE", "YHAT_HEALTH")
	for _, row := range rows {
		fmt.Printf("%-12s %14s %14s %14s\n", row.DS, row.YhatTampa, row.YhatStPete, row.YhatHealth)
	}
	fmt.Printf("%d rows\n", len(rows))
	return nil
}

// fileSource serves a local HTML file as the fetched page.
type fileSource string

func (f fileSource) FetchPage(_ context.Context) ([]byte, error) {
	return os.ReadFile(string(f))
}
