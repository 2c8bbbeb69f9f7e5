package sync

import (
	"testing"

	"studyhub/internal/domain"
)

func course(id int, title string) domain.Course {
	return domain.Course{
		ID:          id,
		Title:       title,
		Category:    "Programming",
		Level:       domain.LevelBeginner,
		Duration:    "4 weeks",
		Rating:      4.5,
		Students:    10,
		LastUpdated: domain.MustTimestamp("2024-01-01"),
		Tags:        []string{"go"},
	}
}

func ids(cs []domain.Course) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiff(t *testing.T) {
	previous := []domain.Course{course(3, "C"), course(1, "A"), course(2, "B")}

	changed := course(2, "B")
	changed.Students = 11
	incoming := []domain.Course{course(4, "D"), course(1, " a "), changed}

	got := Diff(incoming, previous)
	if !equalInts(ids(got.Created), []int{4}) {
		t.Errorf("Expected created [4], got %v", ids(got.Created))
	}
	if !equalInts(ids(got.Updated), []int{2}) {
		t.Fatalf("Expected updated [2], got %v", ids(got.Updated))
	}
	if !equalInts(ids(got.Removed), []int{3}) {
		t.Errorf("Expected removed [3], got %v", ids(got.Removed))
	}
	if got.Updated[0].Students != 11 {
		t.Errorf("Expected the incoming version, got %+v", got.Updated[0])
	}
}

func TestDiffIdentical(t *testing.T) {
	cs := []domain.Course{course(1, "A"), course(2, "B")}
	if got := Diff(cs, cs); !got.Empty() {
		t.Errorf("Expected no changes, got %+v", got)
	}
}

func TestNeedsUpdate(t *testing.T) {
	base := course(1, "A")

	cases := []struct {
		name   string
		mutate func(c *domain.Course)
		want   bool
	}{
		{"unchanged", func(c *domain.Course) {}, false},
		{"tiny rating drift", func(c *domain.Course) { c.Rating += 0.001 }, false},
		{"tag case", func(c *domain.Course) { c.Tags = []string{"GO"} }, false},
		{"rating", func(c *domain.Course) { c.Rating = 3.9 }, true},
		{"level", func(c *domain.Course) { c.Level = domain.LevelAdvanced }, true},
		{"last updated", func(c *domain.Course) { c.LastUpdated = domain.MustTimestamp("2024-02-01") }, true},
		{"tags", func(c *domain.Course) { c.Tags = []string{"go", "web"} }, true},
		{"lessons", func(c *domain.Course) { c.Lessons = []domain.Lesson{{ID: 1, Title: "Intro"}} }, true},
		{"instructor", func(c *domain.Course) { c.Instructor.Name = "Ada" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			c.Tags = append([]string(nil), base.Tags...)
			tc.mutate(&c)
			if got := needsUpdate(c, base); got != tc.want {
				t.Errorf("Expected needsUpdate %v, got %v", tc.want, got)
			}
		})
	}
}
