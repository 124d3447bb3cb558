package utils

import (
	"github.com/edusparsh/erp_backend/models"

	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key the auth middleware stores the
// principal under.
const principalKey = "principal"

// SetPrincipal attaches the authenticated principal to the request context.
func SetPrincipal(c *gin.Context, p models.Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the request's principal. Handlers behind the auth
// middleware can rely on it being present.
func GetPrincipal(c *gin.Context) (models.Principal, error) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, CreateUnauthorizedError()
	}

	p, ok := value.(models.Principal)
	if !ok {
		return models.Principal{}, CreateUnauthorizedError()
	}

	return p, nil
}
