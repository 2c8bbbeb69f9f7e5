package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"

	"studyhub/internal/bookmarks"
	"studyhub/internal/domain"
)

func testCourses() []domain.Course {
	return []domain.Course{
		{
			ID:          1,
			Title:       "Modern Web",
			Category:    "Web Development",
			Level:       domain.LevelBeginner,
			Duration:    "4 weeks",
			Rating:      4.5,
			Students:    100,
			LastUpdated: domain.MustTimestamp("2024-01-01"),
			Instructor:  domain.Instructor{Name: "Ada Byron"},
			Tags:        []string{"javascript", " ", "front\nend"},
			Lessons:     []domain.Lesson{{ID: 1, Title: "Intro"}, {ID: 2, Title: "DOM"}},
		},
		{
			ID:       2,
			Title:    "Statistics, applied",
			Category: "Data Science",
			Level:    domain.LevelIntermediate,
			Duration: "2 weeks",
		},
	}
}

func TestWriteCourseCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCourseCSV(&buf, testCourses(), bookmarks.New(2)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(buf.String(), "\r\n") {
		t.Error("Expected CRLF line endings")
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if !reflect.DeepEqual(records[0], courseHeader) {
		t.Errorf("Unexpected header %v", records[0])
	}

	expected := []string{"1", "Modern Web", "Web Development", "Beginner", "4 weeks", "4.5", "100", "2024-01-01", "Ada Byron", "javascript | front end", "2", "false"}
	if !reflect.DeepEqual(records[1], expected) {
		t.Errorf("Row 1 = %v, want %v", records[1], expected)
	}

	row2 := records[2]
	if row2[1] != "Statistics, applied" || row2[5] != "" || row2[7] != "" || row2[11] != "true" {
		t.Errorf("Unexpected row 2: %v", row2)
	}
}

func TestWriteCourseCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "courses.csv")
	if err := WriteCourseCSVFile(path, testCourses(), bookmarks.Set{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected file to exist, got %v", err)
	}
	if !strings.HasPrefix(string(b), "COURSE_ID,TITLE,") {
		t.Errorf("Unexpected file start %q", string(b[:20]))
	}
}

func TestWriteCourseCSVFileBrotli(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.csv.br")
	if err := WriteCourseCSVFile(path, testCourses(), bookmarks.Set{}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	plain, err := io.ReadAll(brotli.NewReader(f))
	if err != nil {
		t.Fatalf("Expected valid brotli stream, got %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(plain)).ReadAll()
	if err != nil || len(records) != 3 {
		t.Errorf("Expected 3 CSV records, got %d (%v)", len(records), err)
	}
}
