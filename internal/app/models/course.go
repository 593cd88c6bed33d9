package models

import (
	"sort"
	"strings"
	"time"
)

// AcademicYear represents a school year, e.g. "2025-2026".
type AcademicYear struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Class represents a grade level within an academic year.
// Sections is a comma-separated list, e.g. "A,B,C".
type Class struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	AcademicYearID int64     `json:"academic_year" db:"academic_year_id"`
	Sections       string    `json:"sections" db:"sections"`
	ClassTeacherID *int64    `json:"class_teacher_id" db:"class_teacher_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Relations (populated when needed)
	ClassTeacher *Teacher `json:"class_teacher,omitempty"`
}

// SectionList splits the comma-separated sections string into trimmed,
// non-empty section names.
func (c *Class) SectionList() []string {
	if c.Sections == "" {
		return nil
	}
	parts := strings.Split(c.Sections, ",")
	sections := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

// Section is a derived entity computed from class section strings.
type Section struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CollectSections derives the deduplicated, sorted section list from a set
// of classes. IDs are positional, starting at 1.
func CollectSections(classes []*Class) []Section {
	seen := make(map[string]struct{})
	for _, class := range classes {
		for _, name := range class.SectionList() {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]Section, len(names))
	for i, name := range names {
		sections[i] = Section{ID: i + 1, Name: name}
	}
	return sections
}

// Subject represents a taught subject.
type Subject struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ClassSubject assigns a subject to a class, optionally with a teacher.
// At most one row exists per (class, subject) pair.
type ClassSubject struct {
	ID         int64     `json:"id" db:"id"`
	ClassID    int64     `json:"class_obj" db:"class_id"`
	SubjectID  int64     `json:"subject" db:"subject_id"`
	TeacherID  *int64    `json:"teacher_id" db:"teacher_id"`
	IsOptional bool      `json:"is_optional" db:"is_optional"`
	Credits    int       `json:"credits" db:"credits"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// Relations (populated when needed)
	ClassDetail   *Class   `json:"class_details,omitempty"`
	SubjectDetail *Subject `json:"subject_details,omitempty"`
	Teacher       *Teacher `json:"teacher,omitempty"`
}
