package progress

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"studyhub/internal/domain"
	"studyhub/internal/kvstore"
)

// CompletedKey is the per-course store key for completed lessons.
func CompletedKey(courseID int) string {
	return "completed_lessons_" + strconv.Itoa(courseID)
}

// LoadTracker opens a tracker with the lessons completed in earlier sessions
// restored. Stored ids of lessons no longer in the course are dropped; a
// missing or malformed value restores nothing.
func LoadTracker(store kvstore.Store, course domain.Course) (*Tracker, error) {
	t, err := NewTracker(course)
	if err != nil {
		return nil, err
	}

	raw, ok, err := store.Get(CompletedKey(course.ID))
	if err != nil || !ok {
		return t, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return t, nil
	}
	for _, id := range ids {
		i := slices.IndexFunc(course.Lessons, func(l domain.Lesson) bool { return l.ID == id })
		if i >= 0 {
			t.MarkComplete(i)
		}
	}
	return t, nil
}

// Save stores the completed lessons by lesson id, in completion order.
func (t *Tracker) Save(store kvstore.Store) error {
	ids := make([]int, 0, len(t.completed))
	for _, i := range t.completed {
		ids = append(ids, t.course.Lessons[i].ID)
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("progress: marshal completed lessons: %w", err)
	}
	if err := store.Set(CompletedKey(t.course.ID), string(b)); err != nil {
		return fmt.Errorf("progress: save completed lessons: %w", err)
	}
	return nil
}
