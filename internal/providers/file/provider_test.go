package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
)

const catalogJSON = `[{"id": 7, "title": "Go Basics", "category": "Programming", "level": "Beginner",
  "instructor": {"name": "Rob"}, "duration": "3 weeks", "lastUpdated": "2024-03-01",
  "lessons": [{"id": 1, "title": "Hello"}]}]`

func TestListCourses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	p := Provider{Path: path}
	if p.Name() != "file:courses.json" {
		t.Errorf("Unexpected name %q", p.Name())
	}

	courses, err := p.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(courses) != 1 || courses[0].ID != 7 || courses[0].Instructor.Name != "Rob" {
		t.Errorf("Unexpected courses: %+v", courses)
	}
}

func TestListCoursesBrotli(t *testing.T) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	w.Write([]byte(catalogJSON))
	w.Close()

	path := filepath.Join(t.TempDir(), "courses.json.br")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	courses, err := Provider{Path: path}.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(courses) != 1 || courses[0].Title != "Go Basics" {
		t.Errorf("Unexpected courses: %+v", courses)
	}
}

func TestListCoursesMissingFile(t *testing.T) {
	_, err := Provider{Path: filepath.Join(t.TempDir(), "nope.json")}.ListCourses(context.Background())
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
