package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
)

// RegisterDashboardRoutes registers dashboard aggregation routes.
func RegisterDashboardRoutes(router *gin.Engine) {
	dashboardRoutes := router.Group("/api/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware())

	dashboardRoutes.GET("/analytics", controllers.GetDashboardAnalytics)
	dashboardRoutes.GET("/summary", controllers.GetDashboardSummary)
	dashboardRoutes.GET("/centre/:centreId", controllers.GetCentreLeadAnalysis)
}
