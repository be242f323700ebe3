package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"gradebook-server-go/chart"
	"gradebook-server-go/grading"
)

// ComputeFinalGrades handles POST /api/gradebooks/:id/final-grades
func (h *APIHandler) ComputeFinalGrades(c *gin.Context) {
	h.mutate(c, http.StatusOK, grading.ComputeFinalGrades, nil)
}

// GetAverages handles GET /api/gradebooks/:id/averages
// Missing scores count as 0; each entry says which rows were substituted.
func (h *APIHandler) GetAverages(c *gin.Context) {
	t, err := h.RedisService.LoadTable(c.Param("id"))
	if err != nil {
		respondError(c, "load gradebook", err)
		return
	}
	averages, err := grading.Averages(t)
	if err != nil {
		respondError(c, "compute averages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"averages":   averages,
		"hadMissing": anyMissing(averages),
	})
}

// GetGraph handles GET /api/gradebooks/:id/graph.png (?format=svg)
func (h *APIHandler) GetGraph(c *gin.Context) {
	t, err := h.RedisService.LoadTable(c.Param("id"))
	if err != nil {
		respondError(c, "load gradebook", err)
		return
	}
	averages, err := grading.Averages(t)
	if err != nil {
		respondError(c, "compute averages", err)
		return
	}

	format := chart.PNG
	if c.Query("format") == string(chart.SVG) {
		format = chart.SVG
	}
	var buf bytes.Buffer
	if err := chart.RenderAverages(&buf, averages, format); err != nil {
		respondError(c, "render graph", err)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func anyMissing(averages []grading.ColumnAverage) bool {
	for _, a := range averages {
		if a.HadMissing {
			return true
		}
	}
	return false
}
