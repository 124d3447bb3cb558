package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
	"github.com/edusparsh/erp_backend/models"
)

// RegisterAdmissionRoutes registers admission record routes.
func RegisterAdmissionRoutes(router *gin.Engine) {
	admissionRoutes := router.Group("/api/admissions")
	admissionRoutes.Use(middleware.AuthMiddleware())

	admissionRoutes.GET("/", controllers.GetAdmissionList)
	admissionRoutes.GET("/:id", controllers.GetAdmissionDetail)
	admissionRoutes.POST("/", controllers.CreateAdmission)
	admissionRoutes.PUT("/:id",
		middleware.RequireRole(models.UserRoleADMIN),
		controllers.UpdateAdmission)
	admissionRoutes.DELETE("/:id",
		middleware.RequireRole(models.UserRoleADMIN),
		controllers.DeleteAdmission)
}
