package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gradebook-server-go/db"
	"gradebook-server-go/models"
)

// APIHandler holds the dependencies for API handlers, like the Redis service
type APIHandler struct {
	RedisService *db.RedisService
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(service *db.RedisService) *APIHandler {
	return &APIHandler{
		RedisService: service,
	}
}

// --- Gradebook Handlers ---

// GetAllGradebooks handles GET /api/gradebooks
func (h *APIHandler) GetAllGradebooks(c *gin.Context) {
	gradebooks, err := h.RedisService.GetAllGradebooks()
	if err != nil {
		log.Printf("Error in GetAllGradebooks handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gradebooks"})
		return
	}
	if gradebooks == nil {
		c.JSON(http.StatusOK, []models.Gradebook{})
		return
	}
	c.JSON(http.StatusOK, gradebooks)
}

// CreateGradebook handles POST /api/gradebooks
func (h *APIHandler) CreateGradebook(c *gin.Context) {
	var req models.NewGradebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	gb, err := h.RedisService.CreateGradebook(req.Name)
	if err != nil {
		respondError(c, "create gradebook", err)
		return
	}
	c.JSON(http.StatusCreated, gb)
}

// GetGradebook handles GET /api/gradebooks/:id?q=&sort=&order=
func (h *APIHandler) GetGradebook(c *gin.Context) {
	id := c.Param("id")
	gb, err := h.RedisService.GetGradebookByID(id)
	if err != nil {
		log.Printf("Error in GetGradebook handler for ID %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gradebook"})
		return
	}
	if gb == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gradebook not found"})
		return
	}

	t, err := h.RedisService.LoadTable(id)
	if err != nil {
		respondError(c, "load gradebook", err)
		return
	}
	view, err := buildView(*gb, t, viewOptionsFrom(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteGradebook handles DELETE /api/gradebooks/:id
func (h *APIHandler) DeleteGradebook(c *gin.Context) {
	if err := h.RedisService.DeleteGradebook(c.Param("id")); err != nil {
		respondError(c, "delete gradebook", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Ping Handler ---
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
