package grading

import (
	"errors"
	"fmt"
	"strings"

	"gradebook-server-go/roster"
)

// FinalGradeColumn is the header of the column written by ComputeFinalGrades.
const FinalGradeColumn = "Final Grade"

// Category groups score fields for weighting.
type Category int

const (
	Homework Category = iota
	Quiz
	Midterm
	FinalExam
)

// Field is one score column of the roster.
type Field struct {
	Category Category
	Label    string   // short label used for averages and charts, e.g. "HW1"
	Name     string   // name reported by validation, e.g. "MidtermExam"
	Aliases  []string // header names accepted for this field
	Default  int      // fixed position used when the header does not name the field
}

// Fields lists the nine score fields in their fixed order.
var Fields = []Field{
	{Homework, "HW1", "HW1", []string{"HW1", "HW 1", "Homework1"}, 4},
	{Homework, "HW2", "HW2", []string{"HW2", "HW 2", "Homework2"}, 5},
	{Homework, "HW3", "HW3", []string{"HW3", "HW 3", "Homework3"}, 6},
	{Quiz, "Quiz1", "Quiz1", []string{"Quiz1", "Quiz 1"}, 7},
	{Quiz, "Quiz2", "Quiz2", []string{"Quiz2", "Quiz 2"}, 8},
	{Quiz, "Quiz3", "Quiz3", []string{"Quiz3", "Quiz 3"}, 9},
	{Quiz, "Quiz4", "Quiz4", []string{"Quiz4", "Quiz 4"}, 10},
	{Midterm, "Midterm", "MidtermExam", []string{"Midterm", "MidtermExam", "Midterm Exam"}, 11},
	{FinalExam, "Final", "FinalExam", []string{"Final", "FinalExam", "Final Exam"}, 12},
}

// ErrLayout is returned when the score columns cannot be located.
var ErrLayout = errors.New("score columns not found")

// Layout maps every entry of Fields to a column index of a particular table.
type Layout struct {
	Columns [9]int
}

// DefaultLayout places the score fields at columns 4 through 12.
func DefaultLayout() Layout {
	var l Layout
	for i, f := range Fields {
		l.Columns[i] = f.Default
	}
	return l
}

// ResolveLayout locates the score columns of t. When every field is named in
// the header those columns are used; otherwise the fixed positions apply,
// provided the table is wide enough to hold them.
func ResolveLayout(t *roster.Table) (Layout, error) {
	index := make(map[string]int, t.ColumnCount())
	for i, name := range t.Columns() {
		key := normalize(name)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	var l Layout
	named := true
	for i, f := range Fields {
		col, ok := lookup(index, f.Aliases)
		if !ok {
			named = false
			break
		}
		l.Columns[i] = col
	}
	if named {
		return l, nil
	}

	l = DefaultLayout()
	for i, f := range Fields {
		if l.Columns[i] >= t.ColumnCount() {
			return Layout{}, fmt.Errorf("%w: %s expected at column %d but table has %d columns",
				ErrLayout, f.Label, f.Default+1, t.ColumnCount())
		}
	}
	return l, nil
}

func lookup(index map[string]int, aliases []string) (int, bool) {
	for _, a := range aliases {
		if col, ok := index[normalize(a)]; ok {
			return col, true
		}
	}
	return 0, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
