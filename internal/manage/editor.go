// Package manage is the course management screen's editor: an in-memory list
// of the instructor's courses with create, update and delete through a form.
package manage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"studyhub/internal/catalog"
	"studyhub/internal/domain"
)

var (
	ErrNotFound    = errors.New("manage: course not found")
	ErrInvalidForm = errors.New("manage: invalid form")
)

// Option lists offered by the course form.
var (
	Categories = []string{"Mathematics", "Science", "History", "Literature", "Business", "Computer Science"}
	Levels     = domain.Levels
	Tags       = []string{"fundamentals", "advanced", "lab", "theory", "practical"}
)

// Form is the create/edit dialog's state.
type Form struct {
	Title       string
	Category    string
	Description string
	Tags        []string
	Level       domain.Level
	Duration    string
	Thumbnail   string
}

// NewForm returns the blank form shown for a new course.
func NewForm() Form {
	return Form{Level: domain.LevelBeginner, Tags: []string{}}
}

// FormFor fills the form from an existing course for editing.
func FormFor(c domain.Course) Form {
	return Form{
		Title:       c.Title,
		Category:    c.Category,
		Description: c.Description,
		Tags:        slices.Clone(c.Tags),
		Level:       c.Level,
		Duration:    c.Duration,
		Thumbnail:   c.Thumbnail,
	}
}

// ToggleTag adds or removes tag from the form.
func (f *Form) ToggleTag(tag string) {
	if i := slices.Index(f.Tags, tag); i >= 0 {
		f.Tags = slices.Delete(f.Tags, i, i+1)
		return
	}
	f.Tags = append(f.Tags, tag)
}

// Validate reports every missing or invalid field, wrapped in ErrInvalidForm.
func (f Form) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(f.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(f.Duration) == "" {
		missing = append(missing, "duration")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidForm, strings.Join(missing, ", "))
	}
	if !f.Level.Valid() {
		return fmt.Errorf("%w: invalid level %q", ErrInvalidForm, f.Level)
	}
	return nil
}

func (f Form) apply(c domain.Course) domain.Course {
	c.Title = strings.TrimSpace(f.Title)
	c.Category = strings.TrimSpace(f.Category)
	c.Description = strings.TrimSpace(f.Description)
	c.Tags = slices.Clone(f.Tags)
	c.Level = f.Level
	c.Duration = strings.TrimSpace(f.Duration)
	c.Thumbnail = strings.TrimSpace(f.Thumbnail)
	return c
}

// Editor owns the course list of the management screen.
type Editor struct {
	courses []domain.Course
	lastID  int
}

// NewEditor starts from a copy of courses.
func NewEditor(courses []domain.Course) *Editor {
	e := &Editor{courses: slices.Clone(courses)}
	for _, c := range courses {
		e.lastID = max(e.lastID, c.ID)
	}
	return e
}

// List returns the courses in creation order.
func (e *Editor) List() []domain.Course { return slices.Clone(e.courses) }

func (e *Editor) Get(id int) (domain.Course, error) {
	c, ok := catalog.Find(e.courses, id)
	if !ok {
		return domain.Course{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c, nil
}

// Create validates f and appends a course with the next free id.
func (e *Editor) Create(f Form) (domain.Course, error) {
	if err := f.Validate(); err != nil {
		return domain.Course{}, err
	}
	e.lastID++
	c := f.apply(domain.Course{ID: e.lastID})
	e.courses = append(e.courses, c)
	return c, nil
}

// Update replaces the form fields of course id and keeps everything else
// (lessons, ratings, enrolment).
func (e *Editor) Update(id int, f Form) (domain.Course, error) {
	if err := f.Validate(); err != nil {
		return domain.Course{}, err
	}
	i := e.index(id)
	if i < 0 {
		return domain.Course{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	e.courses[i] = f.apply(e.courses[i])
	return e.courses[i], nil
}

func (e *Editor) Delete(id int) error {
	i := e.index(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	e.courses = slices.Delete(e.courses, i, i+1)
	return nil
}

// Filter applies the screen's search, category and level filters. Search
// covers title, description and tags but not the instructor.
func (e *Editor) Filter(search, category, level string) []domain.Course {
	out := catalog.FilterNoInstructor(e.courses, search, category)
	return catalog.FilterLevel(out, level)
}

func (e *Editor) index(id int) int {
	return slices.IndexFunc(e.courses, func(c domain.Course) bool { return c.ID == id })
}
