package caseweb

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
)

// containerSelector locates the element holding the date headers and case
// lists on the updates page.
const containerSelector = "div.article-body"

// Extractor walks the page markup and turns announcement list items into
// case records. The clock supplies the year that source date headers omit.
type Extractor struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewExtractor creates an Extractor. Tests pass a fake clock to pin the
// inferred year.
func NewExtractor(clock clockwork.Clock, logger *slog.Logger) *Extractor {
	return &Extractor{clock: clock, logger: logger}
}

// Extract parses the page body into case records, oldest first.
//
// Headers and lists carry no ID linkage; the i-th h3 pairs with the i-th ul
// by position, which is the page's own convention. Unclassifiable items are
// dropped, counted in the stats, and logged. A missing container or zero
// header/list pairs is a fatal document-shape error.
func (e *Extractor) Extract(body []byte) ([]domain.CaseRecord, domain.ExtractStats, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, domain.ExtractStats{}, fmt.Errorf("parse case page: %w", err)
	}

	container := doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return nil, domain.ExtractStats{}, fmt.Errorf("case page container %q not found", containerSelector)
	}

	headers := container.Find("h3")
	lists := container.Find("ul")

	pairs := headers.Length()
	if lists.Length() < pairs {
		pairs = lists.Length()
	}
	if pairs == 0 {
		return nil, domain.ExtractStats{}, fmt.Errorf("case page has no date header and list pairs")
	}

	year := e.clock.Now().UTC().Year()

	var records []domain.CaseRecord
	var stats domain.ExtractStats
	var itemErr error

	for i := 0; i < pairs; i++ {
		headerText := strings.TrimSpace(headers.Eq(i).Text())
		date, err := parseHeaderDate(headerText, year)
		if err != nil {
			itemErr = fmt.Errorf("date header %d: %w", i, err)
			break
		}

		lists.Eq(i).Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
			text := strings.TrimSpace(li.Text())
			parsed, ok := domain.ParseAnnouncement(text)
			if !ok {
				stats.Unclassified++
				e.logger.Warn("unclassifiable announcement dropped", "date", headerText, "text", text)
				return true
			}
			if parsed.CountDefaulted {
				stats.CountDefaulted++
				e.logger.Warn("quantity word unreadable, count defaulted to 1", "date", headerText, "text", text)
			}
			stats.Parsed++
			records = append(records, domain.CaseRecord{
				Date:           date,
				Location:       parsed.Location,
				Category:       parsed.Category,
				Count:          parsed.Count,
				CountDefaulted: parsed.CountDefaulted,
			})
			return true
		})
	}
	if itemErr != nil {
		return nil, domain.ExtractStats{}, itemErr
	}

	// The page lists newest dates first; reverse so records run oldest to newest.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, stats, nil
}

// parseHeaderDate reads a month-and-day header ("September 3") and attaches
// the given year.
func parseHeaderDate(text string, year int) (time.Time, error) {
	parsed, err := time.Parse("January 2", text)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date header %q: %w", text, err)
	}
	return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}
