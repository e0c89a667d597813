package domain

import "time"

// SeriesPoint is one canonical series entry: the summed count for a
// (date, location, category) key.
type SeriesPoint struct {
	Date     time.Time
	Location Location
	Category Category
	Count    int
}

// Series is the canonical case series, ordered oldest to newest by
// first-seen group order.
type Series []SeriesPoint

// DailyCount is a (date, count) pair used by the per-date views and the
// forecast preparation.
type DailyCount struct {
	Date  time.Time
	Count int
}

type seriesKey struct {
	date     time.Time
	location Location
	category Category
}

// Aggregate folds case records into the canonical series: group by
// (date, location, category), sum counts, preserve first-seen group order.
// Totals are independent of input order.
func Aggregate(records []CaseRecord) Series {
	totals := make(map[seriesKey]int, len(records))
	order := make([]seriesKey, 0, len(records))

	for _, rec := range records {
		key := seriesKey{date: day(rec.Date), location: rec.Location, category: rec.Category}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += rec.Count
	}

	series := make(Series, 0, len(order))
	for _, key := range order {
		series = append(series, SeriesPoint{
			Date:     key.date,
			Location: key.location,
			Category: key.category,
			Count:    totals[key],
		})
	}
	return series
}

// ForLocation returns the sub-series for one location, categories intact.
func (s Series) ForLocation(loc Location) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.Location == loc {
			out = append(out, p)
		}
	}
	return out
}

// ForCategory returns the sub-series for one category.
func (s Series) ForCategory(cat Category) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// DailyTotals collapses the series to one entry per date, categories summed,
// preserving first-seen date order.
func (s Series) DailyTotals() []DailyCount {
	totals := make(map[time.Time]int, len(s))
	order := make([]time.Time, 0, len(s))

	for _, p := range s {
		d := day(p.Date)
		if _, seen := totals[d]; !seen {
			order = append(order, d)
		}
		totals[d] += p.Count
	}

	out := make([]DailyCount, 0, len(order))
	for _, d := range order {
		out = append(out, DailyCount{Date: d, Count: totals[d]})
	}
	return out
}

// Cumulative returns the running total of a daily series in its given order.
func Cumulative(daily []DailyCount) []DailyCount {
	out := make([]DailyCount, len(daily))
	sum := 0
	for i, d := range daily {
		sum += d.Count
		out[i] = DailyCount{Date: d.Date, Count: sum}
	}
	return out
}

// FillDaily reindexes a chronological daily series onto the dense calendar
// range from its first to its last date. Missing days take the previous
// day's value (forward fill): a gap means "no new cases reported", not
// "unknown".
func FillDaily(daily []DailyCount) []DailyCount {
	if len(daily) == 0 {
		return nil
	}

	byDate := make(map[time.Time]int, len(daily))
	for _, d := range daily {
		byDate[day(d.Date)] = d.Count
	}

	first := day(daily[0].Date)
	last := day(daily[len(daily)-1].Date)

	var out []DailyCount
	prev := daily[0].Count
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		v, ok := byDate[d]
		if !ok {
			v = prev
		}
		out = append(out, DailyCount{Date: d, Count: v})
		prev = v
	}
	return out
}

// day truncates a time to its UTC calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
