package sync

import (
	"math"
	"slices"
	"strings"

	"studyhub/internal/domain"
)

// Changes is the result of comparing a freshly loaded catalog with a
// previous snapshot of it.
type Changes struct {
	Created []domain.Course
	Updated []domain.Course
	Removed []domain.Course
}

func (c Changes) Empty() bool {
	return len(c.Created) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// Diff compares incoming courses with a previous snapshot, keyed by course id.
// Returns:
// - Created: present in incoming but not in previous
// - Updated: present in both but changed (incoming version)
// - Removed: present in previous but not in incoming (previous version)
//
// Each list is ordered by id.
func Diff(incoming, previous []domain.Course) Changes {
	prevByID := make(map[int]domain.Course, len(previous))
	for _, c := range previous {
		prevByID[c.ID] = c
	}
	inByID := make(map[int]bool, len(incoming))

	var out Changes
	for _, c := range incoming {
		inByID[c.ID] = true
		old, ok := prevByID[c.ID]
		if !ok {
			out.Created = append(out.Created, c)
			continue
		}
		if needsUpdate(c, old) {
			out.Updated = append(out.Updated, c)
		}
	}
	for _, c := range previous {
		if !inByID[c.ID] {
			out.Removed = append(out.Removed, c)
		}
	}

	byID := func(a, b domain.Course) int { return a.ID - b.ID }
	slices.SortFunc(out.Created, byID)
	slices.SortFunc(out.Updated, byID)
	slices.SortFunc(out.Removed, byID)
	return out
}

func needsUpdate(p, e domain.Course) bool {
	if norm(p.Title) != norm(e.Title) {
		return true
	}
	if norm(p.Description) != norm(e.Description) {
		return true
	}
	if norm(p.Category) != norm(e.Category) {
		return true
	}
	if p.Level != e.Level {
		return true
	}
	if norm(p.Duration) != norm(e.Duration) {
		return true
	}
	if norm(p.Instructor.Name) != norm(e.Instructor.Name) {
		return true
	}

	// Rating: tolerate float formatting differences
	if math.Abs(p.Rating-e.Rating) > 0.01 {
		return true
	}
	if p.Students != e.Students {
		return true
	}
	if !p.LastUpdated.Equal(e.LastUpdated.Time) {
		return true
	}

	if !slices.EqualFunc(p.Tags, e.Tags, func(a, b string) bool { return norm(a) == norm(b) }) {
		return true
	}
	return !slices.EqualFunc(p.Lessons, e.Lessons, func(a, b domain.Lesson) bool {
		return a.ID == b.ID && norm(a.Title) == norm(b.Title) && norm(a.Duration) == norm(b.Duration)
	})
}

func norm(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
