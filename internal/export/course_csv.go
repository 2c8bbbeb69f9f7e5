package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"

	"studyhub/internal/bookmarks"
	"studyhub/internal/domain"
	"studyhub/internal/providers"
)

// Keep header order EXACT; downstream spreadsheets key on column position.
var courseHeader = []string{
	"COURSE_ID",
	"TITLE",
	"CATEGORY",
	"LEVEL",
	"DURATION",
	"RATING",
	"STUDENTS",
	"LAST_UPDATED",
	"INSTRUCTOR",
	"TAGS",
	"LESSONS",
	"BOOKMARKED",
}

// WriteCourseCSV writes courses in the given order, one row each.
func WriteCourseCSV(w io.Writer, courses []domain.Course, marks bookmarks.Set) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(courseHeader); err != nil {
		return err
	}
	for _, c := range courses {
		if err := cw.Write(toRow(c, marks.Has(c.ID))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCourseCSVFile writes the CSV to path, brotli-compressed when path
// ends in ".br". Parent directories are created.
func WriteCourseCSVFile(path string, courses []domain.Course, marks bookmarks.Set) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()

	if !providers.IsBrotli(path) {
		if err := WriteCourseCSV(f, courses, marks); err != nil {
			return fmt.Errorf("export: write csv: %w", err)
		}
		return nil
	}

	bw := brotli.NewWriter(f)
	if err := WriteCourseCSV(bw, courses, marks); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("export: flush brotli: %w", err)
	}
	return nil
}

func toRow(c domain.Course, bookmarked bool) []string {
	rating := ""
	if c.Rating > 0 {
		rating = strconv.FormatFloat(c.Rating, 'f', -1, 64)
	}

	return []string{
		strconv.Itoa(c.ID),                        // COURSE_ID
		clean(c.Title),                            // TITLE
		clean(c.Category),                         // CATEGORY
		string(c.Level),                           // LEVEL
		clean(c.Duration),                         // DURATION
		rating,                                    // RATING
		strconv.Itoa(c.Students),                  // STUDENTS
		c.LastUpdated.String(),                    // LAST_UPDATED
		clean(c.Instructor.Name),                  // INSTRUCTOR
		strings.Join(cleanStrings(c.Tags), " | "), // TAGS
		strconv.Itoa(len(c.Lessons)),              // LESSONS
		strconv.FormatBool(bookmarked),            // BOOKMARKED
	}
}

func clean(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
