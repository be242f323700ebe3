package handlers

import "github.com/gin-gonic/gin"

// SetupRouter registers all API routes on a new gin engine
func SetupRouter(h *APIHandler) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/gradebooks", h.GetAllGradebooks)
		api.POST("/gradebooks", h.CreateGradebook)
		api.GET("/gradebooks/:id", h.GetGradebook)
		api.DELETE("/gradebooks/:id", h.DeleteGradebook)

		// Roster editing
		api.POST("/gradebooks/:id/import", h.ImportRoster)
		api.GET("/gradebooks/:id/export", h.ExportRoster)
		api.POST("/gradebooks/:id/rows", h.AddRow)
		api.DELETE("/gradebooks/:id/rows/:row", h.DeleteRow)
		api.POST("/gradebooks/:id/columns", h.AddColumn)
		api.PUT("/gradebooks/:id/cells", h.UpdateCell)

		// Grading
		api.POST("/gradebooks/:id/final-grades", h.ComputeFinalGrades)
		api.GET("/gradebooks/:id/averages", h.GetAverages)
		api.GET("/gradebooks/:id/graph.png", h.GetGraph)

		api.GET("/ping", PingHandler)
	}
	return router
}
