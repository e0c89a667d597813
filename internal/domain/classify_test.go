package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnouncement(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		location Location
		category Category
		count    int
	}{
		{
			name:     "tampa student",
			line:     "Two USF Tampa students have tested positive for COVID-19",
			location: LocationTampa, category: CategoryStudent, count: 2,
		},
		{
			name:     "tampa employee",
			line:     "One USF Tampa employee has reported a positive case among employees",
			location: LocationTampa, category: CategoryEmployee, count: 1,
		},
		{
			name:     "st pete student",
			line:     "Five students tested positive at St. Pete",
			location: LocationStPetersburg, category: CategoryStudent, count: 5,
		},
		{
			name:     "st pete employee",
			line:     "Three St. Petersburg campus employees have tested positive",
			location: LocationStPetersburg, category: CategoryEmployee, count: 3,
		},
		{
			name:     "health employee",
			line:     "Two USF Health employees have tested positive",
			location: LocationHealth, category: CategoryEmployee, count: 2,
		},
		{
			name:     "health resident counts as employee",
			line:     "One USF Health resident has tested positive",
			location: LocationHealth, category: CategoryEmployee, count: 1,
		},
		{
			name:     "medical student",
			line:     "Four medical students have tested positive",
			location: LocationHealth, category: CategoryStudent, count: 4,
		},
		{
			name:     "sarasota-manatee student",
			line:     "Two sarasota-manatee students have tested positive",
			location: LocationSarasotaManatee, category: CategoryStudent, count: 2,
		},
		{
			name:     "sarasota-manatee employee",
			line:     "One sarasota-manatee employee has tested positive",
			location: LocationSarasotaManatee, category: CategoryEmployee, count: 1,
		},
		{
			name:     "digit count",
			line:     "12 USF Tampa students have tested positive",
			location: LocationTampa, category: CategoryStudent, count: 12,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, ok := ParseAnnouncement(tc.line)
			require.True(t, ok)
			assert.Equal(t, tc.location, parsed.Location)
			assert.Equal(t, tc.category, parsed.Category)
			assert.Equal(t, tc.count, parsed.Count)
			assert.False(t, parsed.CountDefaulted)
		})
	}

	t.Run("first matching rule wins", func(t *testing.T) {
		// Mentions both tampa and health keywords; the tampa-student rule
		// outranks both health rules.
		parsed, ok := ParseAnnouncement("Two USF Tampa students visited the Health clinic")
		require.True(t, ok)
		assert.Equal(t, LocationTampa, parsed.Location)
		assert.Equal(t, CategoryStudent, parsed.Category)
	})

	t.Run("unconvertible quantity defaults to 1", func(t *testing.T) {
		parsed, ok := ParseAnnouncement("Several USF Tampa students have tested positive")
		require.True(t, ok)
		assert.Equal(t, 1, parsed.Count)
		assert.True(t, parsed.CountDefaulted)
	})

	t.Run("unclassifiable line", func(t *testing.T) {
		_, ok := ParseAnnouncement("Two staff members at the library tested positive")
		assert.False(t, ok)
	})

	t.Run("empty line", func(t *testing.T) {
		_, ok := ParseAnnouncement("")
		assert.False(t, ok)
	})
}

func TestRules_OrderAndCoverage(t *testing.T) {
	require.Len(t, Rules, 8)

	// Tampa rules must precede the Health rules so that a mixed line takes
	// the Tampa classification.
	assert.Equal(t, LocationTampa, Rules[0].Location)
	assert.Equal(t, LocationTampa, Rules[1].Location)
	assert.Equal(t, LocationHealth, Rules[4].Location)

	tokens := Tokenize("two tampa health students")
	for _, rule := range Rules {
		if rule.Match(tokens) {
			assert.Equal(t, "tampa-student", rule.Name)
			break
		}
	}
}

func TestWordToNumber(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"one", 1},
		{"three", 3},
		{"Three", 3},
		{"nineteen", 19},
		{"twenty", 20},
		{"twenty-one", 21},
		{"ninety-nine", 99},
		{"7", 7},
		{"three,", 3},
	}
	for _, tc := range cases {
		t.Run(tc.word, func(t *testing.T) {
			got, err := WordToNumber(tc.word)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unconvertible", func(t *testing.T) {
		for _, word := range []string{"xyz", "", "twenty-twenty", "-3"} {
			_, err := WordToNumber(word)
			assert.Error(t, err, "word %q", word)
		}
	})
}
