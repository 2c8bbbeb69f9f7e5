package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Course is the canonical catalog record. Every provider decodes into this
// model and every consumer (query engine, exporter, dashboard) reads from it.
type Course struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Thumbnail   string   `json:"thumbnail,omitempty"`

	Instructor Instructor `json:"instructor"`
	Level      Level      `json:"level"`
	Duration   string     `json:"duration"` // "6 weeks", "12 hours"

	Rating      float64   `json:"rating"`
	Students    int       `json:"students"`
	LastUpdated Timestamp `json:"lastUpdated"`

	Lessons        []Lesson        `json:"lessons"`
	Resources      []Resource      `json:"resources,omitempty"`
	RelatedCourses []CourseSummary `json:"relatedCourses,omitempty"`
}

type Instructor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

// Lesson order inside Course.Lessons is the playback order.
type Lesson struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    string `json:"duration,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Preview     bool   `json:"preview,omitempty"`
}

// Resource is a downloadable attachment shown next to the lesson player.
type Resource struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type,omitempty"` // "PDF", "ZIP"
	Size  string `json:"size,omitempty"`
	URL   string `json:"url,omitempty"`
}

// CourseSummary is the lightweight card used for related courses.
type CourseSummary struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists the accepted levels in ascending difficulty.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Timestamp accepts both RFC 3339 and plain dates ("2024-06-01") in JSON,
// since catalog files are usually hand-written.
type Timestamp struct {
	time.Time
}

const dateLayout = "2006-01-02"

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", dateLayout}

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("domain: invalid timestamp %q", s)
}

// MustTimestamp is ParseTimestamp for literals; it panics on bad input.
func MustTimestamp(s string) Timestamp {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("domain: timestamp must be a string: %w", err)
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// String renders date-only values as "2006-01-02" and everything else as RFC 3339.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}
