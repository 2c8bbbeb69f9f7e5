package export

import (
	"reflect"
	"testing"

	"studyhub/internal/domain"
)

const testName = "John Doe"

func TestPick(t *testing.T) {
	type testStruct struct {
		Name    string `json:"name"`
		Age     int    `json:"age"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}

	testCases := []struct {
		name     string
		input    any
		keys     []string
		expected map[string]any
	}{
		{
			name:     "Pick from struct",
			input:    testStruct{Name: testName, Age: 30, Email: "john@example.com", Address: "123 Main St"},
			keys:     []string{"name", "email"},
			expected: map[string]any{"name": testName, "email": "john@example.com"},
		},
		{
			name:     "Pick from map",
			input:    map[string]any{"name": "Jane Smith", "age": 25},
			keys:     []string{"name", "age"},
			expected: map[string]any{"name": "Jane Smith", "age": float64(25)}, // JSON numbers decode as float64
		},
		{
			name:     "Pick from nil",
			input:    nil,
			keys:     []string{"name"},
			expected: map[string]any{},
		},
		{
			name:     "Pick with no keys",
			input:    testStruct{Name: testName},
			keys:     []string{},
			expected: map[string]any{},
		},
		{
			name:     "Pick non-existent keys",
			input:    testStruct{Name: testName},
			keys:     []string{"nonexistent"},
			expected: map[string]any{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if result := Pick(tc.input, tc.keys...); !reflect.DeepEqual(result, tc.expected) {
				t.Errorf("Pick() = %v, want %v", result, tc.expected)
			}
		})
	}
}

func TestPickAllCourses(t *testing.T) {
	courses := []domain.Course{
		{ID: 1, Title: "Modern Web", LastUpdated: domain.MustTimestamp("2024-01-01")},
		{ID: 2, Title: "Statistics"},
	}

	got := PickAll(courses, "id", "lastUpdated")
	expected := []map[string]any{
		{"id": float64(1), "lastUpdated": "2024-01-01"},
		{"id": float64(2), "lastUpdated": ""},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("PickAll() = %v, want %v", got, expected)
	}
}
