package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLinearTrend(t *testing.T) {
	start := date(2020, time.September, 1)

	t.Run("recovers an exact linear series", func(t *testing.T) {
		// y = 3 + 2x over five days.
		var series []domain.DailyCount
		for i := 0; i < 5; i++ {
			series = append(series, domain.DailyCount{Date: start.AddDate(0, 0, i), Count: 3 + 2*i})
		}

		m := NewLinearTrend()
		require.NoError(t, m.Fit(series))

		points := m.Predict(3)
		require.Len(t, points, 8)
		for i, p := range points {
			assert.Equal(t, start.AddDate(0, 0, i), p.Date)
			assert.InDelta(t, float64(3+2*i), p.Value, 1e-9)
		}
	})

	t.Run("horizon extends past the last observed date", func(t *testing.T) {
		series := []domain.DailyCount{
			{Date: start, Count: 1},
			{Date: start.AddDate(0, 0, 1), Count: 2},
		}
		m := NewLinearTrend()
		require.NoError(t, m.Fit(series))

		points := m.Predict(50)
		require.Len(t, points, 52)
		assert.Equal(t, start.AddDate(0, 0, 51), points[51].Date)
	})

	t.Run("rejects fewer than two points", func(t *testing.T) {
		m := NewLinearTrend()
		assert.Error(t, m.Fit(nil))
		assert.Error(t, m.Fit([]domain.DailyCount{{Date: start, Count: 1}}))
	})
}

func TestPrepareLocation(t *testing.T) {
	d1 := date(2020, time.September, 1)
	d3 := date(2020, time.September, 3)

	t.Run("cumulative then forward-filled", func(t *testing.T) {
		series := domain.Series{
			{Date: d1, Location: domain.LocationTampa, Category: domain.CategoryStudent, Count: 2},
			{Date: d1, Location: domain.LocationTampa, Category: domain.CategoryEmployee, Count: 1},
			{Date: d3, Location: domain.LocationTampa, Category: domain.CategoryStudent, Count: 5},
		}

		prepared, err := PrepareLocation(series)
		require.NoError(t, err)
		require.Len(t, prepared, 3)

		// Sept 2 was never observed: it takes Sept 1's cumulative value, not
		// an interpolation.
		assert.Equal(t, domain.DailyCount{Date: d1, Count: 3}, prepared[0])
		assert.Equal(t, domain.DailyCount{Date: d1.AddDate(0, 0, 1), Count: 3}, prepared[1])
		assert.Equal(t, domain.DailyCount{Date: d3, Count: 8}, prepared[2])
	})

	t.Run("empty location errors", func(t *testing.T) {
		_, err := PrepareLocation(nil)
		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	start := date(2020, time.September, 1)

	fullSeries := func() domain.Series {
		var s domain.Series
		for _, loc := range domain.ForecastLocations {
			for i := 0; i < 3; i++ {
				s = append(s, domain.SeriesPoint{
					Date: start.AddDate(0, 0, i), Location: loc, Category: domain.CategoryStudent, Count: i + 1,
				})
			}
		}
		return s
	}

	t.Run("forecasts every location", func(t *testing.T) {
		results, err := Run(context.Background(), fullSeries(), 10,
			func() Model { return NewLinearTrend() })
		require.NoError(t, err)
		require.Len(t, results, 3)

		for _, loc := range domain.ForecastLocations {
			points := results[loc]
			require.Len(t, points, 13, "location %s", loc)
			assert.Equal(t, start, points[0].Date)
		}
	})

	t.Run("a location with too little data aborts the run", func(t *testing.T) {
		series := fullSeries().ForLocation(domain.LocationTampa)
		_, err := Run(context.Background(), series, 10,
			func() Model { return NewLinearTrend() })
		require.Error(t, err)
	})
}
