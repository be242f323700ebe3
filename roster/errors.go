package roster

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is by callers that only care about the kind.
var (
	ErrIndex  = errors.New("index out of range")
	ErrFormat = errors.New("invalid cell format")
)

// IndexError reports a row or column coordinate outside the table.
type IndexError struct {
	Axis  string // "row" or "column"
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Axis, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndex }

// FormatError reports content that cannot be used as required, such as a
// score that is not a number or a data row wider than the header.
// Row and Col are zero-based; Col is -1 when the whole row is at fault.
type FormatError struct {
	Row    int
	Col    int
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("row %d: %s", e.Row+1, e.Reason)
	}
	return fmt.Sprintf("row %d, column %d: %s (%q)", e.Row+1, e.Col+1, e.Reason, e.Value)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

func rowIndexError(i, n int) error    { return &IndexError{Axis: "row", Index: i, Len: n} }
func columnIndexError(i, n int) error { return &IndexError{Axis: "column", Index: i, Len: n} }
