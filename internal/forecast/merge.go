package forecast

import (
	"time"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
)

// TableRow is one merged prediction row: a date and the point forecast for
// each of the three forecast locations.
type TableRow struct {
	Date   time.Time
	Tampa  float64
	StPete float64
	Health float64
}

// Merge inner-joins the per-location forecasts on date. Only dates present
// in every location's forecast survive; because each location forecasts from
// its own last observed date, the merged range is the intersection and may
// be empty. Rows come out in ascending date order.
func Merge(forecasts map[domain.Location][]Point) []TableRow {
	tampa := forecasts[domain.LocationTampa]
	stPete := indexByDate(forecasts[domain.LocationStPetersburg])
	health := indexByDate(forecasts[domain.LocationHealth])

	var rows []TableRow
	for _, p := range tampa {
		key := dateKey(p.Date)
		sp, okSP := stPete[key]
		h, okH := health[key]
		if !okSP || !okH {
			continue
		}
		rows = append(rows, TableRow{
			Date:   p.Date,
			Tampa:  p.Value,
			StPete: sp,
			Health: h,
		})
	}
	return rows
}

func indexByDate(points []Point) map[string]float64 {
	out := make(map[string]float64, len(points))
	for _, p := range points {
		out[dateKey(p.Date)] = p.Value
	}
	return out
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
