package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

// AccessLogInterceptor logs every request except excluded paths.
func AccessLogInterceptor() gin.HandlerFunc {
	excludedPaths := map[string]bool{
		"/health": true,
	}

	return func(c *gin.Context) {
		if excludedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		queryStr := ""
		if q := c.Request.URL.RawQuery; q != "" {
			queryStr = "?" + q
		}

		log.Infow("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", queryStr,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"latency", latency.String(),
		)
	}
}
