package grading

import (
	"errors"
	"math"
	"testing"

	"gradebook-server-go/roster"
)

var header = []string{
	"SID", "FirstName", "LastName", "Email",
	"HW1", "HW2", "HW3", "Quiz1", "Quiz2", "Quiz3", "Quiz4", "Midterm", "Final",
}

func loadTable(t *testing.T, rows ...[]string) *roster.Table {
	t.Helper()
	tbl := roster.New()
	if err := tbl.Load(append([][]string{header}, rows...)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tbl
}

func twoStudents(t *testing.T) *roster.Table {
	return loadTable(t,
		[]string{"S1001", "Ada", "Lovelace", "ada@example.edu", "90", "90", "90", "80", "80", "80", "80", "85", "90"},
		[]string{"S1002", "Alan", "Turing", "alan@example.edu", "100", "100", "100", "100", "100", "100", "100", "90", "95"},
	)
}

func TestComputeFinalGradesEndToEnd(t *testing.T) {
	tbl := twoStudents(t)
	if err := ComputeFinalGrades(tbl); err != nil {
		t.Fatalf("ComputeFinalGrades: %v", err)
	}
	col := tbl.ColumnIndex(FinalGradeColumn)
	if col != len(header) {
		t.Fatalf("Final Grade column at %d, want %d", col, len(header))
	}
	want := []string{"B (86.50%)", "A (95.50%)"}
	for row, w := range want {
		c, err := tbl.Cell(row, col)
		if err != nil {
			t.Fatal(err)
		}
		if c.Value != w {
			t.Errorf("row %d grade = %q, want %q", row, c.Value, w)
		}
	}
}

func TestComputeFinalGradesIdempotent(t *testing.T) {
	tbl := twoStudents(t)
	if err := ComputeFinalGrades(tbl); err != nil {
		t.Fatal(err)
	}
	first := tbl.Export()
	if err := ComputeFinalGrades(tbl); err != nil {
		t.Fatal(err)
	}
	if tbl.ColumnCount() != len(header)+1 {
		t.Fatalf("ColumnCount = %d, want %d", tbl.ColumnCount(), len(header)+1)
	}
	second := tbl.Export()
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("cell (%d,%d) changed from %q to %q", i, j, first[i][j], second[i][j])
			}
		}
	}
}

func TestComputeFinalGradesOverwritesStaleValues(t *testing.T) {
	tbl := twoStudents(t)
	col := tbl.AppendColumn(FinalGradeColumn)
	if err := tbl.SetCell(0, col, "stale"); err != nil {
		t.Fatal(err)
	}
	if err := ComputeFinalGrades(tbl); err != nil {
		t.Fatal(err)
	}
	if c, _ := tbl.Cell(0, col); c.Value != "B (86.50%)" {
		t.Fatalf("grade = %q", c.Value)
	}
}

func TestComputeFinalGradesValidationShortCircuit(t *testing.T) {
	tbl := loadTable(t,
		[]string{"S1", "a", "b", "c", "90", "90", "90", "80", "80", "80", "80", "85", "90"},
		[]string{"S2", "a", "b", "c", "90", "90", "90", "80", "80", "80", "80", "", "90"},
		[]string{"S3", "a", "b", "c", "", "90", "90", "80", "80", "80", "80", "85", "90"},
	)
	before := tbl.Export()

	err := ComputeFinalGrades(tbl)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ve.Row != 2 || ve.Field != "MidtermExam" {
		t.Fatalf("got %+v, want row 2 MidtermExam", *ve)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err does not match ErrValidation")
	}
	if tbl.ColumnIndex(FinalGradeColumn) != -1 {
		t.Fatalf("Final Grade column created on failure")
	}
	after := tbl.Export()
	if len(after[0]) != len(before[0]) {
		t.Fatalf("header changed on failure")
	}
}

func TestComputeFinalGradesFailureKeepsPreviousGrades(t *testing.T) {
	tbl := twoStudents(t)
	if err := ComputeFinalGrades(tbl); err != nil {
		t.Fatal(err)
	}
	col := tbl.ColumnIndex(FinalGradeColumn)
	before := tbl.Export()

	// A raised homework score would change row 1's grade if the run got that far.
	if err := tbl.SetCell(0, 4, "100"); err != nil {
		t.Fatal(err)
	}
	if err := tbl.ClearCell(1, 11); err != nil {
		t.Fatal(err)
	}

	var ve *ValidationError
	if err := ComputeFinalGrades(tbl); !errors.As(err, &ve) || ve.Row != 2 || ve.Field != "MidtermExam" {
		t.Fatalf("err = %v, want row 2 MidtermExam", err)
	}
	if got := tbl.ColumnIndex(FinalGradeColumn); got != col || tbl.ColumnCount() != len(before[0]) {
		t.Fatalf("Final Grade column moved to %d (%d columns)", got, tbl.ColumnCount())
	}
	for row := 0; row < tbl.RowCount(); row++ {
		c, err := tbl.Cell(row, col)
		if err != nil {
			t.Fatal(err)
		}
		if !c.Present || c.Value != before[row+1][col] {
			t.Fatalf("row %d grade = %+v, want %q", row, c, before[row+1][col])
		}
	}
}

func TestComputeFinalGradesFieldNames(t *testing.T) {
	full := []string{"S1", "a", "b", "c", "90", "90", "90", "80", "80", "80", "80", "85", "90"}
	tests := []struct {
		col  int
		want string
	}{
		{4, "HW1"}, {6, "HW3"}, {7, "Quiz1"}, {10, "Quiz4"}, {11, "MidtermExam"}, {12, "FinalExam"},
	}
	for _, tt := range tests {
		row := append([]string(nil), full...)
		row[tt.col] = ""
		tbl := loadTable(t, row)
		err := ComputeFinalGrades(tbl)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tt.want || ve.Row != 1 {
			t.Errorf("column %d: err = %v, want %s in row 1", tt.col, err, tt.want)
		}
	}
}

func TestComputeFinalGradesNonInteger(t *testing.T) {
	tbl := loadTable(t,
		[]string{"S1", "a", "b", "c", "90", "ninety", "90", "80", "80", "80", "80", "85", "90"},
	)
	err := ComputeFinalGrades(tbl)
	var fe *roster.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FormatError", err)
	}
	if fe.Row != 0 || fe.Col != 5 {
		t.Fatalf("got %+v", *fe)
	}
	if tbl.ColumnIndex(FinalGradeColumn) != -1 {
		t.Fatalf("Final Grade column created on failure")
	}
}

func TestComputeFinalGradesNarrowTable(t *testing.T) {
	tbl := roster.New("SID", "HW1")
	tbl.AppendRow()
	if err := ComputeFinalGrades(tbl); !errors.Is(err, ErrLayout) {
		t.Fatalf("err = %v, want ErrLayout", err)
	}
}

func TestResolveLayoutByName(t *testing.T) {
	tbl := roster.New("Final", "Midterm", "Quiz4", "Quiz3", "Quiz2", "Quiz1", "HW3", "HW2", "HW1", "SID")
	l, err := ResolveLayout(tbl)
	if err != nil {
		t.Fatal(err)
	}
	want := [9]int{8, 7, 6, 5, 4, 3, 2, 1, 0}
	if l.Columns != want {
		t.Fatalf("layout = %v, want %v", l.Columns, want)
	}
}

func TestResolveLayoutFallsBackToPositions(t *testing.T) {
	cols := make([]string, 13)
	for i := range cols {
		cols[i] = "c"
	}
	l, err := ResolveLayout(roster.New(cols...))
	if err != nil {
		t.Fatal(err)
	}
	if l != DefaultLayout() {
		t.Fatalf("layout = %v", l.Columns)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{100, "A (100.00%)"},
		{90.01, "A (90.01%)"},
		{90, "B (90.00%)"},
		{80.5, "B (80.50%)"},
		{80, "C (80.00%)"},
		{70, "D (70.00%)"},
		{60.01, "D (60.01%)"},
		{60, "F (60.00%)"},
		{0, "F (0.00%)"},
		{93.5, "A (93.50%)"},
		{100.5, "A (100.50%)"},
		{110, "A (110.00%)"},
	}
	for _, tt := range tests {
		if got := FormatGrade(tt.percent); got != tt.want {
			t.Errorf("FormatGrade(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestPercentageExactOnBoundary(t *testing.T) {
	s := Scores{Homework: [3]int{90, 90, 90}, Quiz: [4]int{90, 90, 90, 90}, Midterm: 90, FinalExam: 90}
	if p := s.Percentage(); p != 90 {
		t.Fatalf("Percentage = %v, want exactly 90", p)
	}
	if g := FormatGrade(s.Percentage()); g != "B (90.00%)" {
		t.Fatalf("grade = %q", g)
	}
	zero := Scores{}
	if g := FormatGrade(zero.Percentage()); g != "F (0.00%)" {
		t.Fatalf("grade = %q", g)
	}
}

func TestComputeFinalGradesAboveFullMarks(t *testing.T) {
	tbl := loadTable(t,
		[]string{"S1", "a", "b", "c", "110", "110", "110", "110", "110", "110", "110", "110", "110"},
	)
	if err := ComputeFinalGrades(tbl); err != nil {
		t.Fatal(err)
	}
	c, _ := tbl.Cell(0, tbl.ColumnIndex(FinalGradeColumn))
	if c.Value != "A (110.00%)" {
		t.Fatalf("grade = %q, want A (110.00%%)", c.Value)
	}
}

func TestAverageZeroSubstitution(t *testing.T) {
	tbl := roster.New("Score")
	for _, v := range []string{"80", "", "100"} {
		row := tbl.AppendRow()
		if v != "" {
			if err := tbl.SetCell(row, 0, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	avg, missing, err := Average(tbl, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(avg-60) > 1e-9 || !missing {
		t.Fatalf("Average = %v, %v; want 60, true", avg, missing)
	}
}

func TestAverageEmptyAndErrors(t *testing.T) {
	empty := roster.New("Score")
	if avg, missing, err := Average(empty, 7); err != nil || avg != 0 || missing {
		t.Fatalf("empty table: %v %v %v", avg, missing, err)
	}

	tbl := roster.New("Score")
	tbl.AppendRow()
	if err := tbl.SetCell(0, 0, "abc"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Average(tbl, 0); !errors.Is(err, roster.ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
	if _, _, err := Average(tbl, 3); !errors.Is(err, roster.ErrIndex) {
		t.Fatalf("err = %v, want ErrIndex", err)
	}
}

func TestAverages(t *testing.T) {
	tbl := twoStudents(t)
	if err := tbl.ClearCell(1, 11); err != nil {
		t.Fatal(err)
	}
	avgs, err := Averages(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(avgs) != len(Fields) {
		t.Fatalf("got %d averages", len(avgs))
	}
	if avgs[0].Label != "HW1" || avgs[0].Value != 95 || avgs[0].HadMissing {
		t.Fatalf("HW1 = %+v", avgs[0])
	}
	mid := avgs[7]
	if mid.Label != "Midterm" || mid.Value != 42.5 || !mid.HadMissing || len(mid.MissingRows) != 1 || mid.MissingRows[0] != 2 {
		t.Fatalf("Midterm = %+v", mid)
	}
}

func TestAveragesEmptyTable(t *testing.T) {
	avgs, err := Averages(roster.New())
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range avgs {
		if a.Value != 0 || a.HadMissing {
			t.Fatalf("%s = %+v", a.Label, a)
		}
	}
}
