package domain

import (
	"errors"
	"fmt"
)

// TotalCases sums every count in the series.
func TotalCases(s Series) int {
	total := 0
	for _, p := range s {
		total += p.Count
	}
	return total
}

// LatestDailySummary formats the most recent daily entry, e.g.
// "5 cases (September 3 2020)". A count of exactly 1 reads "1 case".
func LatestDailySummary(s Series) (string, error) {
	daily := s.DailyTotals()
	if len(daily) == 0 {
		return "", errors.New("series is empty")
	}

	latest := daily[len(daily)-1]
	noun := "cases"
	if latest.Count == 1 {
		noun = "case"
	}
	return fmt.Sprintf("%d %s (%s)", latest.Count, noun, latest.Date.Format("January 2 2006")), nil
}

// PercentChangeResult reports the fractional change in cumulative cases over
// a trailing window. Change is always non-negative; Status carries the sign.
type PercentChangeResult struct {
	Change     float64
	Status     string // "increase" or "decrease"
	MostRecent int    // latest cumulative total
	Reference  int    // cumulative total at the reference date
}

// PercentChange computes the change in cumulative cases between today minus
// window days and the most recent entry. When the exact reference date is
// absent from the series the window widens one day at a time, bounded by the
// earliest observed date, so the search always terminates.
func PercentChange(s Series, windowDays int) (PercentChangeResult, error) {
	daily := s.DailyTotals()
	if len(daily) == 0 {
		return PercentChangeResult{}, errors.New("series is empty")
	}
	cum := Cumulative(daily)

	byDate := make(map[string]int, len(cum))
	for _, d := range cum {
		byDate[d.Date.Format("2006-01-02")] = d.Count
	}

	today := day(clock.Now())
	earliest := cum[0].Date

	reference := -1
	for w := windowDays; ; w++ {
		limit := today.AddDate(0, 0, -w)
		if limit.Before(earliest) {
			return PercentChangeResult{}, fmt.Errorf("no series entry at or before %d days back", windowDays)
		}
		if v, ok := byDate[limit.Format("2006-01-02")]; ok {
			reference = v
			break
		}
	}

	if reference == 0 {
		return PercentChangeResult{}, errors.New("reference cumulative total is zero")
	}

	mostRecent := cum[len(cum)-1].Count
	change := float64(mostRecent-reference) / float64(reference)
	status := "increase"
	if change < 0 {
		status = "decrease"
		change = -change
	}

	return PercentChangeResult{
		Change:     change,
		Status:     status,
		MostRecent: mostRecent,
		Reference:  reference,
	}, nil
}

// DailyAverages returns the mean daily (pre-cumulative) count per category
// for a single location's series.
func DailyAverages(s Series) map[Category]float64 {
	sums := make(map[Category]int)
	counts := make(map[Category]int)
	for _, p := range s {
		sums[p.Category] += p.Count
		counts[p.Category]++
	}

	out := make(map[Category]float64, len(sums))
	for cat, sum := range sums {
		out[cat] = float64(sum) / float64(counts[cat])
	}
	return out
}

// AverageComparison phrases the student-to-employee daily average ratio for
// a campus.
func AverageComparison(studentAvg, employeeAvg float64, campus string) string {
	if employeeAvg == 0 {
		return fmt.Sprintf("No USF %s employees have tested positive so far.", campus)
	}
	ratio := studentAvg / employeeAvg
	if ratio == 1 {
		return fmt.Sprintf("On average per day, the same number of students have tested positive compared to USF %s employees.", campus)
	}
	return fmt.Sprintf("On average per day, %.2g times the number of students have tested positive compared to USF %s employees.", ratio, campus)
}
