package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validCourse() Course {
	return Course{
		ID:          1,
		Title:       "Modern JavaScript",
		Description: "Closures, promises and modules",
		Category:    "Web Development",
		Tags:        []string{"javascript", "frontend"},
		Instructor:  Instructor{Name: "Ada Byron"},
		Level:       LevelBeginner,
		Duration:    "6 weeks",
		Rating:      4.7,
		Students:    1200,
		LastUpdated: MustTimestamp("2024-01-01"),
		Lessons: []Lesson{
			{ID: 1, Title: "Intro"},
			{ID: 2, Title: "Closures"},
		},
	}
}

func TestCourseJSON(t *testing.T) {
	raw := `{
		"id": 7,
		"title": "Data Structures",
		"description": "Lists, trees and graphs",
		"category": "Computer Science",
		"tags": ["algorithms", "Trees"],
		"instructor": {"name": "Grace", "avatar": "/a.png", "bio": "Compilers"},
		"level": "Intermediate",
		"duration": "8 weeks",
		"rating": 4.5,
		"students": 320,
		"lastUpdated": "2024-06-01",
		"lessons": [{"id": 1, "title": "Arrays", "preview": true}]
	}`

	var c Course
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if c.ID != 7 {
		t.Errorf("Expected ID to be 7, got %d", c.ID)
	}
	if c.Level != LevelIntermediate {
		t.Errorf("Expected Level to be 'Intermediate', got '%s'", c.Level)
	}
	if c.Instructor.Name != "Grace" {
		t.Errorf("Expected instructor 'Grace', got '%s'", c.Instructor.Name)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !c.LastUpdated.Equal(want) {
		t.Errorf("Expected LastUpdated to be %v, got %v", want, c.LastUpdated.Time)
	}
	if len(c.Lessons) != 1 || !c.Lessons[0].Preview {
		t.Errorf("Expected one preview lesson, got %+v", c.Lessons)
	}
}

func TestTimestamp(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-01-01", "2024-01-01", false},
		{"2024-01-01T10:30:00Z", "2024-01-01T10:30:00Z", false},
		{"2024-01-01T10:30:00", "2024-01-01T10:30:00Z", false},
		{"", "", false},
		{"yesterday", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			ts, err := ParseTimestamp(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if ts.String() != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, ts.String())
			}
		})
	}

	var ts Timestamp
	if err := json.Unmarshal([]byte(`12`), &ts); err == nil {
		t.Error("Expected error for non-string timestamp")
	}
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil || !ts.IsZero() {
		t.Errorf("Expected null to decode as zero timestamp, got %v (%v)", ts, err)
	}
}

func TestLevelValid(t *testing.T) {
	for _, l := range Levels {
		if !l.Valid() {
			t.Errorf("Expected %q to be valid", l)
		}
	}
	if Level("Expert").Valid() {
		t.Error("Expected 'Expert' to be invalid")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(validCourse()); err != nil {
		t.Fatalf("Expected valid course, got %v", err)
	}

	bad := validCourse()
	bad.ID = 0
	bad.Title = " "
	bad.Level = "Expert"
	bad.Lessons = append(bad.Lessons, Lesson{ID: 2, Title: "Again"})

	err := Validate(bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if len(verr.Problems) != 4 {
		t.Errorf("Expected 4 problems, got %d: %v", len(verr.Problems), verr)
	}
	if !strings.Contains(err.Error(), "duplicate lesson id 2") {
		t.Errorf("Expected duplicate lesson message, got %q", err.Error())
	}
}

func TestValidateAllowsNoLessons(t *testing.T) {
	c := validCourse()
	c.Lessons = nil
	if err := Validate(c); err != nil {
		t.Errorf("Expected course without lessons to be valid, got %v", err)
	}
}

func TestValidateCatalog(t *testing.T) {
	a := validCourse()
	b := validCourse()
	b.ID = 2
	if err := ValidateCatalog([]Course{a, b}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err := ValidateCatalog([]Course{a, b, a})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}
}
