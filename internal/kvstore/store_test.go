package kvstore

import (
	"os"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Errorf("Expected miss without error, got ok=%v err=%v", ok, err)
	}

	if err := s.Set("bookmarkedCourses", "[1,2]"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	v, ok, err := s.Get("bookmarkedCourses")
	if err != nil || !ok || v != "[1,2]" {
		t.Errorf("Expected '[1,2]', got %q ok=%v err=%v", v, ok, err)
	}

	if err := s.Set("bookmarkedCourses", "[3]"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v, _, _ := s.Get("bookmarkedCourses"); v != "[3]" {
		t.Errorf("Expected overwrite to '[3]', got %q", v)
	}

	if err := s.Delete("bookmarkedCourses"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok, _ := s.Get("bookmarkedCourses"); ok {
		t.Error("Expected key to be deleted")
	}
	if err := s.Delete("never-set"); err != nil {
		t.Errorf("Expected deleting a missing key to succeed, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryZeroValue(t *testing.T) {
	var m Memory
	if err := m.Set("k", "v"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v, ok, _ := m.Get("k"); !ok || v != "v" {
		t.Errorf("Expected 'v', got %q", v)
	}
}

func TestFile(t *testing.T) {
	exerciseStore(t, NewFile(filepath.Join(t.TempDir(), "nested", "store.json")))
}

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	if err := NewFile(path).Set("test_score_3", `{"score":8,"total":10}`); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	v, ok, err := NewFile(path).Get("test_score_3")
	if err != nil || !ok || v != `{"score":8,"total":10}` {
		t.Errorf("Expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Expected only the store file to remain, got %d entries", len(entries))
	}
}

func TestFileCorruptReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFile(path)
	if _, ok, err := s.Get("bookmarkedCourses"); ok || err != nil {
		t.Errorf("Expected corrupt file to read as empty, got ok=%v err=%v", ok, err)
	}

	if err := s.Set("bookmarkedCourses", "[1]"); err != nil {
		t.Fatalf("Expected write to replace corrupt file, got %v", err)
	}
	if v, ok, _ := s.Get("bookmarkedCourses"); !ok || v != "[1]" {
		t.Errorf("Expected '[1]', got %q", v)
	}
}
