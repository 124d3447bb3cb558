package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
	"github.com/edusparsh/erp_backend/models"
)

// RegisterUserRoutes registers user management routes. All of them are
// admin-only except red-flag raising, which supervising roles also use.
func RegisterUserRoutes(router *gin.Engine) {
	userRoutes := router.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware())

	adminOnly := middleware.RequireRole(models.UserRoleADMIN)

	userRoutes.GET("/", adminOnly, controllers.GetUserList)
	userRoutes.POST("/", adminOnly, controllers.CreateUser)
	userRoutes.GET("/:id", adminOnly, controllers.GetUserDetail)
	userRoutes.PUT("/:id", adminOnly, controllers.UpdateUser)
	userRoutes.DELETE("/:id", adminOnly, controllers.DeleteUser)

	userRoutes.PUT("/:id/red-flag",
		middleware.RequireRole(models.UserRoleADMIN, models.UserRoleCLASS_COORDINATOR, models.UserRoleRM),
		controllers.RaiseRedFlag)
	userRoutes.PUT("/:id/red-flag/reset", adminOnly, controllers.ResetRedFlags)
}
