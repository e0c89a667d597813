// Package domain models the university's published COVID-19 case announcements.
//
// # Data Source
//
// Case announcements appear on a public updates page as free text, grouped
// under date headers. The page body holds repeating pairs of elements: an
// h3 header carrying a month-and-day date ("September 3"; the year is never
// printed) followed by a ul whose items each announce one batch of cases,
// e.g. "Two USF Tampa students have tested positive."
//
// # Announcement Conventions
//
// Quantity:
//
//	The first word of an item states how many cases it covers, usually as a
//	number word ("two", "seventeen") and occasionally as digits. Items whose
//	first word cannot be read as a quantity describe a single case; the
//	parser records a count of 1 and marks the record as defaulted so the
//	caller can surface a warning instead of silently coercing.
//
// Location and category keywords:
//
//	Classification is keyword containment over the lower-cased, whitespace
//	tokenized line, evaluated against an ordered rule table where the first
//	match wins:
//
//	  "tampa" + student terms              -> Tampa / Student
//	  "tampa" + employee terms             -> Tampa / Employee
//	  "st." + student terms                -> St. Petersburg / Student
//	  "st." + employee terms               -> St. Petersburg / Employee
//	  "health"/"medical" + employee terms  -> Health / Employee
//	    (employee terms here include "resident"/"residents", since USF
//	    Health announcements count medical residents as employees)
//	  "health"/"medical" + student terms   -> Health / Student
//	  "sarasota-manatee" + student terms   -> Sarasota-Manatee / Student
//	  "sarasota-manatee" + employee terms  -> Sarasota-Manatee / Employee
//
//	Rule order matters: a line mentioning both "tampa" and "health" counts
//	toward Tampa. Lines matching no rule are unclassifiable and are dropped
//	by the extractor, which counts and logs each one.
//
// Dates:
//
//	Header dates omit the year; the current year from the injected clock is
//	attached when records are built. Source order runs newest first, so the
//	extractor reverses the record sequence to chronological order.
//
// # Series Shape
//
// Aggregation folds records into a canonical series keyed by
// (date, location, category) with at most one entry per key, counts summed,
// first-seen group order preserved. All derived metrics and the forecast
// preparation work from that canonical shape.
package domain
