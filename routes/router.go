package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/utils"
)

// RegisterRoutes registers every route group on the engine.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterUserRoutes(router)
	RegisterLeadRoutes(router)
	RegisterDashboardRoutes(router)
	RegisterCentreRoutes(router)
	RegisterZoneRoutes(router)
	RegisterMasterDataRoutes(router)
	RegisterAdmissionRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "failed to read database status: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
