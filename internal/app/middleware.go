package app

import (
	"time"

	"storefront/internal/auth"
	"storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

// requestLogger logs one line per request. Errors attached with c.Error are
// logged at error level together with the request.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if id := auth.UserIDFromContext(c); id != 0 {
			args = append(args, "user_id", id)
		}
		if len(c.Errors) > 0 {
			log.Error("request failed", append(args, "error", c.Errors.String())...)
			return
		}
		if c.Writer.Status() >= 500 {
			log.Warn("request", args...)
			return
		}
		log.Info("request", args...)
	}
}
