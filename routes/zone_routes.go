package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
	"github.com/edusparsh/erp_backend/models"
)

// RegisterZoneRoutes registers zone management routes.
func RegisterZoneRoutes(router *gin.Engine) {
	zoneRoutes := router.Group("/api/zones")
	zoneRoutes.Use(middleware.AuthMiddleware())

	adminOnly := middleware.RequireRole(models.UserRoleADMIN)

	zoneRoutes.GET("/", controllers.GetZoneList)
	zoneRoutes.GET("/:id", controllers.GetZoneDetail)
	zoneRoutes.POST("/", adminOnly, controllers.CreateZone)
	zoneRoutes.PUT("/:id", adminOnly, controllers.UpdateZone)
	zoneRoutes.DELETE("/:id", adminOnly, controllers.DeleteZone)
}
