package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edusparsh/erp_backend/controllers"
	"github.com/edusparsh/erp_backend/middleware"
	"github.com/edusparsh/erp_backend/models"
)

// RegisterMasterDataRoutes registers the CRUD routes for every master-data
// entity. All of them share the same handler set and the same access rules:
// any authenticated user may list, mutations are admin-only.
func RegisterMasterDataRoutes(router *gin.Engine) {
	entities := map[string]controllers.MasterEntity{
		"/api/boards":       controllers.BoardEntity,
		"/api/classes":      controllers.ClassEntity,
		"/api/courses":      controllers.CourseEntity,
		"/api/subjects":     controllers.SubjectEntity,
		"/api/batches":      controllers.BatchEntity,
		"/api/sessions":     controllers.SessionEntity,
		"/api/scripts":      controllers.ScriptEntity,
		"/api/sources":      controllers.SourceEntity,
		"/api/coordinators": controllers.CoordinatorEntity,
		"/api/rms":          controllers.RMEntity,
	}

	adminOnly := middleware.RequireRole(models.UserRoleADMIN)

	for path, entity := range entities {
		group := router.Group(path)
		group.Use(middleware.AuthMiddleware())

		group.GET("/", entity.List)
		group.GET("/:id", entity.Get)
		group.POST("/", adminOnly, entity.Create)
		group.PUT("/:id", adminOnly, entity.Update)
		group.DELETE("/:id", adminOnly, entity.Delete)
	}
}
