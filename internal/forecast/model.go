// Package forecast fits per-location trend models over the cumulative case
// series and merges their forward extensions into one prediction table.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
)

// Point is one forecasted value for a calendar date.
type Point struct {
	Date  time.Time
	Value float64
}

// Model is a univariate daily time-series model. Fit consumes a dense
// chronological cumulative series; Predict returns the point forecast over
// the fitted range plus horizon future days.
type Model interface {
	Fit(series []domain.DailyCount) error
	Predict(horizon int) []Point
}

// LinearTrend is an ordinary least squares fit of cumulative count against
// day index. Cumulative case counts are monotone and close to piecewise
// linear at this scale, so a trend line gives a stable point forecast.
type LinearTrend struct {
	alpha, beta float64
	start       time.Time
	days        int
}

// NewLinearTrend returns an unfitted trend model.
func NewLinearTrend() *LinearTrend {
	return &LinearTrend{}
}

// Fit estimates the trend over the given dense series. At least two points
// are required.
func (m *LinearTrend) Fit(series []domain.DailyCount) error {
	if len(series) < 2 {
		return fmt.Errorf("linear trend fit requires at least 2 points, got %d", len(series))
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = float64(i)
		ys[i] = float64(p.Count)
	}

	m.alpha, m.beta = stat.LinearRegression(xs, ys, nil, false)
	m.start = series[0].Date
	m.days = len(series)
	return nil
}

// Predict returns fitted values for every observed day plus horizon days
// beyond the last one.
func (m *LinearTrend) Predict(horizon int) []Point {
	total := m.days + horizon
	out := make([]Point, 0, total)
	for i := 0; i < total; i++ {
		out = append(out, Point{
			Date:  m.start.AddDate(0, 0, i),
			Value: m.alpha + m.beta*float64(i),
		})
	}
	return out
}

// PrepareLocation converts one location's sub-series into the model input:
// per-date totals across categories, cumulative sum in chronological order,
// reindexed onto the dense calendar range with gaps forward-filled.
func PrepareLocation(series domain.Series) ([]domain.DailyCount, error) {
	daily := series.DailyTotals()
	if len(daily) == 0 {
		return nil, errors.New("location has no observations")
	}
	return domain.FillDaily(domain.Cumulative(daily)), nil
}
