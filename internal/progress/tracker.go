// Package progress tracks a learner's way through one course: the lesson
// being watched, completed lessons, per-lesson notes and the course test score.
package progress

import (
	"errors"
	"math"
	"slices"
	"strings"

	"studyhub/internal/domain"
)

var ErrNoLessons = errors.New("progress: course has no lessons")

// Tracker is owned by a single viewer session and is not safe for
// concurrent use.
type Tracker struct {
	course    domain.Course
	current   int
	completed []int
	notes     map[int]string
}

func NewTracker(course domain.Course) (*Tracker, error) {
	if len(course.Lessons) == 0 {
		return nil, ErrNoLessons
	}
	return &Tracker{course: course, notes: map[int]string{}}, nil
}

func (t *Tracker) Course() domain.Course { return t.course }

func (t *Tracker) Current() int { return t.current }

func (t *Tracker) CurrentLesson() domain.Lesson { return t.course.Lessons[t.current] }

// Select moves to lesson i, clamped to the lesson range.
func (t *Tracker) Select(i int) int {
	t.current = max(0, min(i, len(t.course.Lessons)-1))
	return t.current
}

func (t *Tracker) Next() int { return t.Select(t.current + 1) }

func (t *Tracker) Prev() int { return t.Select(t.current - 1) }

// MarkComplete records lesson i as done. Out-of-range indexes and repeats
// are ignored; the return value reports whether anything changed.
func (t *Tracker) MarkComplete(i int) bool {
	if i < 0 || i >= len(t.course.Lessons) || t.IsComplete(i) {
		return false
	}
	t.completed = append(t.completed, i)
	return true
}

func (t *Tracker) IsComplete(i int) bool { return slices.Contains(t.completed, i) }

// Completed returns lesson indexes in the order they were completed.
func (t *Tracker) Completed() []int { return slices.Clone(t.completed) }

// Percent is the rounded share of completed lessons, 0..100.
func (t *Tracker) Percent() int {
	return int(math.Round(float64(len(t.completed)) / float64(len(t.course.Lessons)) * 100))
}

func (t *Tracker) AllCompleted() bool { return len(t.completed) == len(t.course.Lessons) }

// SaveNote attaches text to the current lesson, replacing any earlier note.
// Blank text is ignored.
func (t *Tracker) SaveNote(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	t.notes[t.CurrentLesson().ID] = text
	return true
}

func (t *Tracker) Note(lessonID int) (string, bool) {
	n, ok := t.notes[lessonID]
	return n, ok
}
