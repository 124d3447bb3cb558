package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
	"github.com/edusparsh/erp_backend/models"
)

// RegisterCentreRoutes registers centre management routes. Listing is
// scoped per caller; mutations are admin-only.
func RegisterCentreRoutes(router *gin.Engine) {
	centreRoutes := router.Group("/api/centres")
	centreRoutes.Use(middleware.AuthMiddleware())

	adminOnly := middleware.RequireRole(models.UserRoleADMIN)

	centreRoutes.GET("/", controllers.GetCentreList)
	centreRoutes.GET("/:id", controllers.GetCentreDetail)
	centreRoutes.POST("/", adminOnly, controllers.CreateCentre)
	centreRoutes.PUT("/:id", adminOnly, controllers.UpdateCentre)
	centreRoutes.DELETE("/:id", adminOnly, controllers.DeleteCentre)
}
