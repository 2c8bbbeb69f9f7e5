// Package catalog computes the visible, ordered view of a course catalog:
// search, category and level filtering, sorting and category listing.
// All functions are pure and never modify their input slices.
package catalog

import (
	"slices"
	"strings"

	"studyhub/internal/domain"
)

// All is the wildcard accepted by the category and level filters.
const All = "All"

// Filter keeps the courses matching both the search text and the category.
// The search text is matched case-insensitively against title, description,
// tags and instructor name; an empty search matches everything.
func Filter(courses []domain.Course, search, category string) []domain.Course {
	return filter(courses, search, category, true)
}

// FilterLevel keeps courses at the given level, or all of them for "All".
func FilterLevel(courses []domain.Course, level string) []domain.Course {
	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		if level == All || string(c.Level) == level {
			out = append(out, c)
		}
	}
	return out
}

// FilterNoInstructor is Filter without the instructor-name match, as used by
// the course management screen.
func FilterNoInstructor(courses []domain.Course, search, category string) []domain.Course {
	return filter(courses, search, category, false)
}

func filter(courses []domain.Course, search, category string, instructor bool) []domain.Course {
	needle := strings.ToLower(search)
	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		if category != All && c.Category != category {
			continue
		}
		if !matches(c, needle, instructor) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(c domain.Course, needle string, instructor bool) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return instructor && strings.Contains(strings.ToLower(c.Instructor.Name), needle)
}

// Categories returns "All" followed by the distinct categories in order of
// first appearance.
func Categories(courses []domain.Course) []string {
	out := []string{All}
	seen := map[string]bool{All: true}
	for _, c := range courses {
		if seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		out = append(out, c.Category)
	}
	return out
}

// Find looks a course up by id.
func Find(courses []domain.Course, id int) (domain.Course, bool) {
	i := slices.IndexFunc(courses, func(c domain.Course) bool { return c.ID == id })
	if i < 0 {
		return domain.Course{}, false
	}
	return courses[i], true
}

// Query bundles the browse page's controls.
type Query struct {
	Search   string
	Category string
	Level    string
	Sort     SortOption
}

// DefaultQuery matches every course and orders by popularity.
func DefaultQuery() Query {
	return Query{Category: All, Level: All, Sort: Popular}
}

// Apply filters by search and category, then level, then sorts.
// Empty Category or Level are treated as "All".
func (q Query) Apply(courses []domain.Course) []domain.Course {
	category, level := q.Category, q.Level
	if category == "" {
		category = All
	}
	if level == "" {
		level = All
	}
	out := Filter(courses, q.Search, category)
	out = FilterLevel(out, level)
	return Sort(out, q.Sort)
}
