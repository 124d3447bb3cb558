package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
	"github.com/edusparsh/erp_backend/models"
)

// RegisterLeadRoutes registers lead CRUD, follow-ups, bulk import/export,
// analytics and recording routes.
func RegisterLeadRoutes(router *gin.Engine) {
	leadRoutes := router.Group("/api/leads")
	leadRoutes.Use(middleware.AuthMiddleware())

	leadRoutes.GET("/", controllers.GetLeads)
	leadRoutes.GET("/analytics", controllers.GetLeadAnalytics)
	leadRoutes.GET("/export",
		middleware.RequireCapability(models.CoarseCapability("Export Data")),
		controllers.ExportLeads)
	leadRoutes.POST("/create",
		middleware.RequireCapability(models.GranularCapability("leads", "manage", "create")),
		controllers.CreateLead)
	leadRoutes.POST("/bulk-import",
		middleware.RequireCapability(models.CoarseCapability("Bulk Import")),
		controllers.BulkImportLeads)

	leadRoutes.GET("/:id", controllers.GetLeadDetail)
	leadRoutes.PUT("/:id",
		middleware.RequireCapability(models.GranularCapability("leads", "manage", "edit")),
		controllers.UpdateLead)
	leadRoutes.PUT("/:id/follow-up", controllers.AddFollowUp)
	leadRoutes.POST("/:id/recordings", controllers.AddRecording)
	leadRoutes.DELETE("/:id",
		middleware.RequireRole(models.UserRoleADMIN),
		controllers.DeleteLead)
}
