package models

import "gradebook-server-go/roster"

// Gradebook describes one stored roster
type Gradebook struct {
	ID        string `json:"id"`        // Unique gradebook ID (uuid)
	Name      string `json:"name"`      // Display name, e.g. course and term
	CreatedAt string `json:"createdAt"` // RFC 3339 creation time
}

// NewGradebookRequest is the body of POST /api/gradebooks
type NewGradebookRequest struct {
	Name string `json:"name" binding:"required"`
}

// NewColumnRequest is the body of POST /api/gradebooks/:id/columns
type NewColumnRequest struct {
	Name string `json:"name" binding:"required"`
}

// CellUpdate is the body of PUT /api/gradebooks/:id/cells.
// Clear makes the cell absent and ignores Value.
type CellUpdate struct {
	Row   *int   `json:"row" binding:"required"`
	Col   *int   `json:"col" binding:"required"`
	Value string `json:"value"`
	Clear bool   `json:"clear"`
}

// RowView is one visible row; Index is its position in the stored table
type RowView struct {
	Index int           `json:"index"`
	Cells []roster.Cell `json:"cells"`
}

// TableView is what a client renders for a gradebook
type TableView struct {
	Gradebook
	Columns   []string  `json:"columns"`
	Rows      []RowView `json:"rows"`
	TotalRows int       `json:"totalRows"`
}
