package forecast

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
)

// Run fits one model per forecast location and returns the per-location
// point forecasts. The fits are independent, so they run concurrently; any
// failure aborts the whole run. newModel supplies a fresh model per
// location.
func Run(ctx context.Context, series domain.Series, horizon int, newModel func() Model) (map[domain.Location][]Point, error) {
	results := make(map[domain.Location][]Point, len(domain.ForecastLocations))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, loc := range domain.ForecastLocations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			prepared, err := PrepareLocation(series.ForLocation(loc))
			if err != nil {
				return fmt.Errorf("prepare %s: %w", loc, err)
			}

			model := newModel()
			if err := model.Fit(prepared); err != nil {
				return fmt.Errorf("fit %s: %w", loc, err)
			}

			mu.Lock()
			results[loc] = model.Predict(horizon)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
