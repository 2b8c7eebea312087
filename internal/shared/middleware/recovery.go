package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// Recovery converts panics into a 500 response instead of dropping the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", fmt.Errorf("%v", r))
				response.InternalServerError(c, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
