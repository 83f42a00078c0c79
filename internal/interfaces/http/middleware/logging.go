package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	"github.com/annotext/annotext/internal/infrastructure/monitoring/prometheus"
)

// RequestLogging logs every request as one line and records HTTP metrics,
// labeled by route template so path parameters do not explode cardinality.
func RequestLogging(logger logging.Logger, metrics prometheus.Collector) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		elapsed := time.Since(started)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.IncHTTPRequest(c.Request.Method, route, strconv.Itoa(status))
		metrics.ObserveHTTPDuration(c.Request.Method, route, elapsed)

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("elapsed", elapsed),
			logging.String("request_id", c.GetString(ContextKeyRequestID)),
		}
		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request served", fields...)
		}
	}
}
