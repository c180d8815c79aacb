package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/KOMKZ/property-catalog/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery recovers from handler panics with structured logging.
// Replaces gin.Recovery(): the full stack goes to the log, never to the
// client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				logger.ErrorCtx(c.Request.Context(), "http", "panic recovered",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.String("stack", stack),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal Server Error",
					"message": fmt.Sprintf("%v", err),
				})
			}
		}()

		c.Next()
	}
}
