package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenSet holds the lower-cased whitespace tokens of one announcement line.
type TokenSet map[string]struct{}

// Tokenize lower-cases a line and splits it on whitespace.
func Tokenize(line string) TokenSet {
	fields := strings.Fields(strings.ToLower(line))
	set := make(TokenSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// HasAny reports whether any of the given words appears in the set.
func (ts TokenSet) HasAny(words ...string) bool {
	for _, w := range words {
		if _, ok := ts[w]; ok {
			return true
		}
	}
	return false
}

var (
	studentTerms  = []string{"student", "students"}
	employeeTerms = []string{"employee", "employees"}

	// Tampa and Sarasota-Manatee announcements sometimes use a combined
	// "Student-Employee:" prefix; it counts as a student term there.
	campusStudentTerms = []string{"student", "students", "student-employee:"}

	// USF Health counts medical residents among employees.
	healthEmployeeTerms = []string{"employee", "employees", "resident", "residents"}
)

// Rule pairs a keyword predicate with the classification it yields.
type Rule struct {
	Name     string
	Location Location
	Category Category
	Match    func(TokenSet) bool
}

// Rules is the classification table, evaluated top to bottom; the first
// matching rule wins. Order is load-bearing: Tampa rules outrank Health
// rules, so a line mentioning both classifies as Tampa.
var Rules = []Rule{
	{
		Name: "tampa-student", Location: LocationTampa, Category: CategoryStudent,
		Match: func(ts TokenSet) bool { return ts.HasAny("tampa") && ts.HasAny(campusStudentTerms...) },
	},
	{
		Name: "tampa-employee", Location: LocationTampa, Category: CategoryEmployee,
		Match: func(ts TokenSet) bool { return ts.HasAny("tampa") && ts.HasAny(employeeTerms...) },
	},
	{
		Name: "stpete-student", Location: LocationStPetersburg, Category: CategoryStudent,
		Match: func(ts TokenSet) bool { return ts.HasAny("st.") && ts.HasAny(studentTerms...) },
	},
	{
		Name: "stpete-employee", Location: LocationStPetersburg, Category: CategoryEmployee,
		Match: func(ts TokenSet) bool { return ts.HasAny("st.") && ts.HasAny(employeeTerms...) },
	},
	{
		Name: "health-employee", Location: LocationHealth, Category: CategoryEmployee,
		Match: func(ts TokenSet) bool {
			return ts.HasAny("health", "medical") && ts.HasAny(healthEmployeeTerms...)
		},
	},
	{
		Name: "health-student", Location: LocationHealth, Category: CategoryStudent,
		Match: func(ts TokenSet) bool { return ts.HasAny("health", "medical") && ts.HasAny(studentTerms...) },
	},
	{
		Name: "sarasota-student", Location: LocationSarasotaManatee, Category: CategoryStudent,
		Match: func(ts TokenSet) bool { return ts.HasAny("sarasota-manatee") && ts.HasAny(campusStudentTerms...) },
	},
	{
		Name: "sarasota-employee", Location: LocationSarasotaManatee, Category: CategoryEmployee,
		Match: func(ts TokenSet) bool { return ts.HasAny("sarasota-manatee") && ts.HasAny(employeeTerms...) },
	},
}

// ParsedAnnouncement is the classification of one announcement line.
type ParsedAnnouncement struct {
	Location       Location
	Category       Category
	Count          int
	CountDefaulted bool
}

// ParseAnnouncement classifies one line of free text. It returns ok=false
// when no rule matches; unclassifiable lines carry no location, category, or
// count and must not enter the series.
func ParseAnnouncement(line string) (ParsedAnnouncement, bool) {
	tokens := Tokenize(line)

	count := 1
	defaulted := true
	if fields := strings.Fields(strings.ToLower(line)); len(fields) > 0 {
		if n, err := WordToNumber(fields[0]); err == nil {
			count = n
			defaulted = false
		}
	}

	for _, rule := range Rules {
		if rule.Match(tokens) {
			return ParsedAnnouncement{
				Location:       rule.Location,
				Category:       rule.Category,
				Count:          count,
				CountDefaulted: defaulted,
			}, true
		}
	}
	return ParsedAnnouncement{}, false
}

var wordUnits = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var wordTens = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// WordToNumber converts a single quantity word to an integer. It accepts
// digit strings ("17"), number words through "nineteen", tens words, and
// hyphenated compounds ("twenty-one").
func WordToNumber(word string) (int, error) {
	word = strings.Trim(strings.ToLower(word), ".,;:")
	if word == "" {
		return 0, fmt.Errorf("empty quantity word")
	}

	if n, err := strconv.Atoi(word); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative quantity %q", word)
		}
		return n, nil
	}
	if n, ok := wordUnits[word]; ok {
		return n, nil
	}
	if n, ok := wordTens[word]; ok {
		return n, nil
	}
	if tens, units, ok := strings.Cut(word, "-"); ok {
		t, okT := wordTens[tens]
		u, okU := wordUnits[units]
		if okT && okU && u > 0 && u < 10 {
			return t + u, nil
		}
	}
	return 0, fmt.Errorf("unrecognized quantity word %q", word)
}
