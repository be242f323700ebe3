package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gradebook-server-go/db"
	"gradebook-server-go/grading"
	"gradebook-server-go/roster"
	"gradebook-server-go/tabular"
)

// respondError maps service and core errors to HTTP responses. Unknown
// errors are logged and reported as "Failed to <action>".
func respondError(c *gin.Context, action string, err error) {
	var (
		validationErr *grading.ValidationError
		formatErr     *roster.FormatError
		indexErr      *roster.IndexError
	)

	switch {
	case errors.Is(err, db.ErrGradebookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Gradebook not found"})
	case errors.Is(err, db.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("Error: Empty cell in row-%d %s", validationErr.Row, validationErr.Field),
			"row":   validationErr.Row,
			"field": validationErr.Field,
		})
	case errors.As(err, &formatErr):
		body := gin.H{"error": err.Error(), "row": formatErr.Row + 1}
		if formatErr.Col >= 0 {
			body["column"] = formatErr.Col + 1
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &indexErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "axis": indexErr.Axis})
	case errors.Is(err, grading.ErrLayout):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, tabular.ErrUnsupportedFormat), errors.Is(err, tabular.ErrMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, db.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Error trying to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
