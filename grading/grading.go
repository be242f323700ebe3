// Package grading computes per-assignment averages and weighted final letter
// grades over a roster table. It keeps no state between calls.
package grading

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gradebook-server-go/roster"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("required score missing")

// ValidationError identifies the first row (1-based) and field whose score
// is absent during final grade computation.
type ValidationError struct {
	Row   int
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("empty cell in row %d: %s", e.Row, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Average is the arithmetic mean of column col over all rows. Absent cells
// count as 0 and set hadMissing. A table without rows averages to 0.
func Average(t *roster.Table, col int) (value float64, hadMissing bool, err error) {
	avg, missing, err := columnAverage(t, col)
	return avg, len(missing) > 0, err
}

// ColumnAverage is the average of one score field.
type ColumnAverage struct {
	Label       string  `json:"label"`
	Column      int     `json:"column"`
	Value       float64 `json:"value"`
	HadMissing  bool    `json:"had_missing"`
	MissingRows []int   `json:"missing_rows,omitempty"` // 1-based
}

// Averages returns the average of every score field in Fields order.
func Averages(t *roster.Table) ([]ColumnAverage, error) {
	layout, err := ResolveLayout(t)
	if err != nil {
		if t.RowCount() != 0 {
			return nil, err
		}
		layout = DefaultLayout()
	}

	out := make([]ColumnAverage, 0, len(Fields))
	for i, f := range Fields {
		col := layout.Columns[i]
		avg, missing, err := columnAverage(t, col)
		if err != nil {
			return nil, err
		}
		out = append(out, ColumnAverage{
			Label:       f.Label,
			Column:      col,
			Value:       avg,
			HadMissing:  len(missing) > 0,
			MissingRows: missing,
		})
	}
	return out, nil
}

func columnAverage(t *roster.Table, col int) (float64, []int, error) {
	n := t.RowCount()
	if n == 0 {
		return 0, nil, nil
	}
	if _, err := t.HeaderLabel(col); err != nil {
		return 0, nil, err
	}

	var sum float64
	var missing []int
	for row := 0; row < n; row++ {
		c, err := t.Cell(row, col)
		if err != nil {
			return 0, nil, err
		}
		if !c.Present {
			missing = append(missing, row+1)
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, nil, &roster.FormatError{Row: row, Col: col, Value: c.Value, Reason: "score is not a number"}
		}
		sum += v
	}
	return sum / float64(n), missing, nil
}

// Weights of the final percentage. Homework and quizzes are averaged within
// their category before weighting.
const (
	HomeworkWeight  = 0.20
	QuizWeight      = 0.20
	MidtermWeight   = 0.30
	FinalExamWeight = 0.30
)

// Scores are the integer scores of one student.
type Scores struct {
	Homework  [3]int
	Quiz      [4]int
	Midterm   int
	FinalExam int
}

// Percentage returns the weighted final percentage. It is evaluated as
// scaled/60 with scaled an exact integer so that results landing on a letter
// boundary compare equal to it.
func (s Scores) Percentage() float64 {
	var hw, quiz int
	for _, v := range s.Homework {
		hw += v
	}
	for _, v := range s.Quiz {
		quiz += v
	}
	// hw/3*0.2 = 4hw/60, quiz/4*0.2 = 3quiz/60, x*0.3 = 18x/60
	scaled := 4*hw + 3*quiz + 18*s.Midterm + 18*s.FinalExam
	return float64(scaled) / 60
}

// Classify maps a percentage to a letter. Each letter covers a range open
// below and closed above: A (90,∞), B (80,90], C (70,80], D (60,70], F the rest.
func Classify(percent float64) string {
	switch {
	case percent > 90:
		return "A"
	case percent > 80:
		return "B"
	case percent > 70:
		return "C"
	case percent > 60:
		return "D"
	default:
		return "F"
	}
}

// FormatGrade renders the value written to the Final Grade column, e.g. "A (93.50%)".
func FormatGrade(percent float64) string {
	return fmt.Sprintf("%s (%.2f%%)", Classify(percent), percent)
}

// ComputeFinalGrades writes every student's letter grade into the Final Grade
// column, creating it when absent and overwriting it otherwise. Every row is
// read and checked first; on the first absent or non-integer score the table
// is returned untouched with a *ValidationError or *roster.FormatError.
func ComputeFinalGrades(t *roster.Table) error {
	layout, err := ResolveLayout(t)
	if err != nil {
		return err
	}

	grades := make([]string, t.RowCount())
	for row := range grades {
		s, err := readScores(t, layout, row)
		if err != nil {
			return err
		}
		grades[row] = FormatGrade(s.Percentage())
	}

	col := t.ColumnIndex(FinalGradeColumn)
	if col < 0 {
		col = t.AppendColumn(FinalGradeColumn)
	}
	for row, g := range grades {
		if err := t.SetCell(row, col, g); err != nil {
			return err
		}
	}
	return nil
}

func readScores(t *roster.Table, layout Layout, row int) (Scores, error) {
	var s Scores
	var hw, quiz int
	for i, f := range Fields {
		col := layout.Columns[i]
		c, err := t.Cell(row, col)
		if err != nil {
			return s, err
		}
		if !c.Present {
			return s, &ValidationError{Row: row + 1, Field: f.Name}
		}
		v, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil {
			return s, &roster.FormatError{Row: row, Col: col, Value: c.Value, Reason: "score is not an integer"}
		}
		switch f.Category {
		case Homework:
			s.Homework[hw] = v
			hw++
		case Quiz:
			s.Quiz[quiz] = v
			quiz++
		case Midterm:
			s.Midterm = v
		case FinalExam:
			s.FinalExam = v
		}
	}
	return s, nil
}
