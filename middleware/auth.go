package middleware

import (
	"net/http"
	"strings"

	"github.com/edusparsh/erp_backend/models"
	"github.com/edusparsh/erp_backend/repository"
	"github.com/edusparsh/erp_backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and loads the principal. Role,
// centres and permissions come from the users collection on every request,
// never from token claims, so a deleted or demoted user loses access
// immediately.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		userID, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Error().Err(err).Msg("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid token: " + err.Error(),
				"code":    "INVALID_TOKEN",
			})
			return
		}

		// Stale token for a deleted user ends here.
		user, err := repository.FindUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "UNKNOWN_USER",
			})
			return
		}

		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "account disabled",
				"code":    "ACCOUNT_DISABLED",
			})
			return
		}

		utils.SetPrincipal(c, models.PrincipalFromUser(user))
		c.Next()
	}
}

// RequireCapability gates a route on a single capability check.
func RequireCapability(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := utils.GetPrincipal(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "UNAUTHENTICATED",
			})
			return
		}

		if !utils.Authorize(principal, capability) {
			utils.Logger.Info().
				Str("user", principal.Name).
				Str("role", string(principal.Role)).
				Str("capability", capability.Name).
				Str("module", capability.Module).
				Str("section", capability.Section).
				Str("action", capability.Action).
				Msg("permission denied")

			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "insufficient permission",
				"code":    "INSUFFICIENT_PERMISSION",
			})
			return
		}

		c.Next()
	}
}

// RequireRole gates a route on an explicit role set.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := utils.GetPrincipal(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
				"code":    "UNAUTHENTICATED",
			})
			return
		}

		if principal.Role == models.UserRoleSUPER_ADMIN {
			c.Next()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "insufficient permission",
			"code":    "INSUFFICIENT_PERMISSION",
		})
	}
}
