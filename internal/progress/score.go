package progress

import (
	"encoding/json"
	"fmt"
	"strconv"

	"studyhub/internal/kvstore"
)

// TestScore is the result of a course's final test.
type TestScore struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

func (s TestScore) String() string {
	return fmt.Sprintf("Test Score: %d/%d", s.Score, s.Total)
}

// ScoreKey is the per-course store key.
func ScoreKey(courseID int) string {
	return "test_score_" + strconv.Itoa(courseID)
}

// LoadScore returns the stored score; ok is false when none is stored or
// the stored value is malformed.
func LoadScore(store kvstore.Store, courseID int) (TestScore, bool) {
	raw, ok, err := store.Get(ScoreKey(courseID))
	if err != nil || !ok {
		return TestScore{}, false
	}
	var s TestScore
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return TestScore{}, false
	}
	if s.Total <= 0 || s.Score < 0 || s.Score > s.Total {
		return TestScore{}, false
	}
	return s, true
}

func SaveScore(store kvstore.Store, courseID int, s TestScore) error {
	if s.Total <= 0 || s.Score < 0 || s.Score > s.Total {
		return fmt.Errorf("progress: invalid score %d/%d", s.Score, s.Total)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("progress: marshal score: %w", err)
	}
	if err := store.Set(ScoreKey(courseID), string(b)); err != nil {
		return fmt.Errorf("progress: save score: %w", err)
	}
	return nil
}
