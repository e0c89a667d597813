package domain

import "time"

// Location identifies a campus or unit that reports cases.
type Location string

const (
	LocationTampa           Location = "Tampa"
	LocationStPetersburg    Location = "St. Petersburg"
	LocationHealth          Location = "Health"
	LocationSarasotaManatee Location = "Sarasota-Manatee"
)

// ForecastLocations is the fixed set of locations the forecast and summary
// layers iterate. Sarasota-Manatee is classifiable but has never appeared in
// the source data, so it is excluded here.
var ForecastLocations = []Location{LocationTampa, LocationStPetersburg, LocationHealth}

// Category distinguishes who the cases belong to.
type Category string

const (
	CategoryStudent  Category = "Student"
	CategoryEmployee Category = "Employee"
)

// Categories lists all case categories in report order.
var Categories = []Category{CategoryStudent, CategoryEmployee}

// CaseRecord is one classified announcement: count cases of a category at a
// location on a date. Records are immutable inputs to Aggregate and are not
// retained afterwards.
type CaseRecord struct {
	Date     time.Time
	Location Location
	Category Category
	Count    int

	// CountDefaulted marks records whose leading quantity word could not be
	// converted, so Count fell back to 1.
	CountDefaulted bool
}

// ExtractStats summarizes one extraction pass for observability.
type ExtractStats struct {
	Parsed         int
	Unclassified   int
	CountDefaulted int
}
