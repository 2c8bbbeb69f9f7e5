package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateID = errors.New("duplicate course id")

// ValidationError lists every problem found on a single course.
type ValidationError struct {
	CourseID int
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return fmt.Sprintf("domain: course %d: %s", e.CourseID, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

// Validate checks the fields the query engine and dashboard rely on.
// Lessons may be empty: such a course is listable but cannot be opened.
func Validate(c Course) error {
	var problems []error
	if c.ID <= 0 {
		problems = append(problems, errors.New("id must be positive"))
	}
	if strings.TrimSpace(c.Title) == "" {
		problems = append(problems, errors.New("title is required"))
	}
	if strings.TrimSpace(c.Category) == "" {
		problems = append(problems, errors.New("category is required"))
	}
	if !c.Level.Valid() {
		problems = append(problems, fmt.Errorf("invalid level %q", c.Level))
	}
	if c.Rating < 0 {
		problems = append(problems, fmt.Errorf("rating %.2f is negative", c.Rating))
	}
	if c.Students < 0 {
		problems = append(problems, fmt.Errorf("students %d is negative", c.Students))
	}

	seen := make(map[int]bool, len(c.Lessons))
	for i, l := range c.Lessons {
		if strings.TrimSpace(l.Title) == "" {
			problems = append(problems, fmt.Errorf("lesson %d: title is required", i))
		}
		if seen[l.ID] {
			problems = append(problems, fmt.Errorf("lesson %d: duplicate lesson id %d", i, l.ID))
		}
		seen[l.ID] = true
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{CourseID: c.ID, Problems: problems}
}

// ValidateCatalog validates every course and rejects repeated ids.
func ValidateCatalog(courses []Course) error {
	var errs []error
	seen := make(map[int]bool, len(courses))
	for _, c := range courses {
		if err := Validate(c); err != nil {
			errs = append(errs, err)
		}
		if seen[c.ID] {
			errs = append(errs, fmt.Errorf("domain: course %d: %w", c.ID, ErrDuplicateID))
		}
		seen[c.ID] = true
	}
	return errors.Join(errs...)
}
