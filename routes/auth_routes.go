package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
)

// RegisterAuthRoutes registers login and profile routes.
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	// Public, no token required.
	auth.POST("/login", controllers.Login)

	auth.GET("/profile", middleware.AuthMiddleware(), controllers.GetProfile)
}
