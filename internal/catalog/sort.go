package catalog

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"studyhub/internal/domain"
)

type SortOption string

const (
	Popular      SortOption = "Popular"
	Newest       SortOption = "Newest"
	HighestRated SortOption = "HighestRated"
	Shortest     SortOption = "Shortest"
)

// SortOptions is the order the options are offered in.
var SortOptions = []SortOption{Popular, Newest, HighestRated, Shortest}

// Label is the text shown for the option in a picker.
func (o SortOption) Label() string {
	if o == HighestRated {
		return "Highest Rated"
	}
	return string(o)
}

// ParseSortOption accepts option names and labels in any case, ignoring
// spaces, dashes and underscores. Unknown values fall back to Popular.
func ParseSortOption(s string) SortOption {
	o, _ := LookupSortOption(s)
	return o
}

// LookupSortOption is ParseSortOption that also reports whether s named a
// known option. An empty s is the default and counts as known.
func LookupSortOption(s string) (SortOption, bool) {
	key := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	if key == "" {
		return Popular, true
	}
	for _, o := range SortOptions {
		if strings.ToLower(string(o)) == key {
			return o, true
		}
	}
	return Popular, false
}

// Sort returns a stably sorted copy of courses. Unknown options sort by
// popularity. For Shortest, durations without a leading number go last.
func Sort(courses []domain.Course, option SortOption) []domain.Course {
	out := slices.Clone(courses)
	if out == nil {
		out = []domain.Course{}
	}

	switch option {
	case Newest:
		slices.SortStableFunc(out, func(a, b domain.Course) int {
			return b.LastUpdated.Compare(a.LastUpdated.Time)
		})
	case HighestRated:
		slices.SortStableFunc(out, func(a, b domain.Course) int {
			return cmpDesc(a.Rating, b.Rating)
		})
	case Shortest:
		slices.SortStableFunc(out, compareDuration)
	default:
		slices.SortStableFunc(out, func(a, b domain.Course) int {
			return cmpDesc(a.Students, b.Students)
		})
	}
	return out
}

func cmpDesc[T int | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func compareDuration(a, b domain.Course) int {
	da, okA := LeadingNumber(a.Duration)
	db, okB := LeadingNumber(b.Duration)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	case da < db:
		return -1
	case da > db:
		return 1
	}
	return 0
}

var leadingNumberRe = regexp.MustCompile(`^[+-]?\d+(\.\d+)?`)

// LeadingNumber reads the number a duration starts with ("6 weeks" -> 6,
// "1.5 hours" -> 1.5, "2-3 weeks" -> 2, "10+ hours" -> 10). Only plain
// decimal digits count, so "1e3" reads as 1. ok is false when the first
// token does not start with a number.
func LeadingNumber(duration string) (n float64, ok bool) {
	fields := strings.Fields(duration)
	if len(fields) == 0 {
		return 0, false
	}
	m := leadingNumberRe.FindString(fields[0])
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
