package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gradebook-server-go/models"
	"gradebook-server-go/roster"
	"gradebook-server-go/tabular"
)

const deletePrompt = "Do you really want to delete?"

// ImportRoster handles POST /api/gradebooks/:id/import
// The multipart "file" replaces the whole table.
func (h *APIHandler) ImportRoster(c *gin.Context) {
	id := c.Param("id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	format, err := tabular.FormatFromFilename(header.Filename)
	if f := c.Query("format"); f != "" {
		format, err = tabular.ParseFormat(f)
	}
	if err != nil {
		respondError(c, "import roster", err)
		return
	}

	log.Printf("Received %s upload: %s for gradebook: %s", format, header.Filename, id)

	count, err := h.RedisService.ImportRoster(id, file, format)
	if err != nil {
		respondError(c, "import roster", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": count,
		"gradebookId":   id,
	})
}

// ExportRoster handles GET /api/gradebooks/:id/export?format=csv|xlsx
func (h *APIHandler) ExportRoster(c *gin.Context) {
	id := c.Param("id")
	format, err := tabular.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, "export roster", err)
		return
	}

	var buf bytes.Buffer
	if err := h.RedisService.ExportRoster(id, &buf, format); err != nil {
		respondError(c, "export roster", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="gradebook-%s.%s"`, id, format))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// AddRow handles POST /api/gradebooks/:id/rows
func (h *APIHandler) AddRow(c *gin.Context) {
	var index int
	h.mutate(c, http.StatusCreated, func(t *roster.Table) error {
		index = t.AppendRow()
		return nil
	}, func() gin.H { return gin.H{"index": index} })
}

// DeleteRow handles DELETE /api/gradebooks/:id/rows/:row?confirm=true
// Without confirmation the client is asked to prompt the user first.
func (h *APIHandler) DeleteRow(c *gin.Context) {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Row must be an integer"})
		return
	}
	if confirmed, _ := strconv.ParseBool(c.Query("confirm")); !confirmed {
		c.JSON(http.StatusPreconditionRequired, gin.H{"message": deletePrompt, "row": row})
		return
	}
	h.mutate(c, http.StatusOK, func(t *roster.Table) error {
		return t.RemoveRow(row)
	}, nil)
}

// AddColumn handles POST /api/gradebooks/:id/columns
func (h *APIHandler) AddColumn(c *gin.Context) {
	var req models.NewColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	var index int
	h.mutate(c, http.StatusCreated, func(t *roster.Table) error {
		index = t.AppendColumn(req.Name)
		return nil
	}, func() gin.H { return gin.H{"index": index} })
}

// UpdateCell handles PUT /api/gradebooks/:id/cells
func (h *APIHandler) UpdateCell(c *gin.Context) {
	var req models.CellUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	h.mutate(c, http.StatusOK, func(t *roster.Table) error {
		if req.Clear {
			return t.ClearCell(*req.Row, *req.Col)
		}
		return t.SetCell(*req.Row, *req.Col, req.Value)
	}, nil)
}

// mutate applies fn to the stored table and answers with the re-rendered
// view. extra adds fields next to the view.
func (h *APIHandler) mutate(c *gin.Context, status int, fn func(t *roster.Table) error, extra func() gin.H) {
	id := c.Param("id")
	t, err := h.RedisService.UpdateTable(id, fn)
	if err != nil {
		respondError(c, "update gradebook", err)
		return
	}

	gb, err := h.RedisService.GetGradebookByID(id)
	if err != nil || gb == nil {
		gb = &models.Gradebook{ID: id}
	}
	view, err := buildView(*gb, t, viewOptions{})
	if err != nil {
		respondError(c, "render gradebook", err)
		return
	}
	if extra == nil {
		c.JSON(status, view)
		return
	}
	body := extra()
	body["gradebook"] = view
	c.JSON(status, body)
}
