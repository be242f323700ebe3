package handlers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gradebook-server-go/models"
	"gradebook-server-go/roster"
)

// viewOptions control what a client sees. Sorting only affects the view; the
// stored row order never changes.
type viewOptions struct {
	Query string
	Sort  string // column label or zero-based index
	Desc  bool
}

func viewOptionsFrom(c *gin.Context) viewOptions {
	return viewOptions{
		Query: c.Query("q"),
		Sort:  c.Query("sort"),
		Desc:  strings.EqualFold(c.Query("order"), "desc"),
	}
}

func buildView(gb models.Gradebook, t *roster.Table, opts viewOptions) (models.TableView, error) {
	view := models.TableView{
		Gradebook: gb,
		Columns:   t.Columns(),
		TotalRows: t.RowCount(),
	}

	visible := roster.Filter(t, opts.Query)
	view.Rows = make([]models.RowView, 0, len(visible))
	for _, i := range visible {
		cells, err := t.Row(i)
		if err != nil {
			return view, err
		}
		view.Rows = append(view.Rows, models.RowView{Index: i, Cells: cells})
	}

	if opts.Sort == "" {
		return view, nil
	}
	col := t.ColumnIndex(opts.Sort)
	if col < 0 {
		n, err := strconv.Atoi(opts.Sort)
		if err != nil || n < 0 || n >= t.ColumnCount() {
			return view, fmt.Errorf("unknown sort column %q", opts.Sort)
		}
		col = n
	}
	sort.SliceStable(view.Rows, func(i, j int) bool {
		a, b := view.Rows[i].Cells[col], view.Rows[j].Cells[col]
		if opts.Desc {
			a, b = b, a
		}
		return lessCell(a, b)
	})
	return view, nil
}

// lessCell orders absent cells first, then numbers numerically, then text.
func lessCell(a, b roster.Cell) bool {
	if !a.Present || !b.Present {
		return !a.Present && b.Present
	}
	x, errA := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
	y, errB := strconv.ParseFloat(strings.TrimSpace(b.Value), 64)
	switch {
	case errA == nil && errB == nil:
		return x < y
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a.Value < b.Value
}
