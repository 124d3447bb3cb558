package middleware

import (
	"github.com/edusparsh/erp_backend/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the fallback error boundary for handlers that push errors
// onto the gin context instead of responding directly.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// A response was already written.
		if c.Writer.Status() >= 400 {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			utils.HandleError(c, err.Err)
			return
		}
	}
}
