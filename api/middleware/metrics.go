package middleware

import (
	"lolanalyzer/pkg/metrics"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics middleware collects Prometheus metrics for requests.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Route template, so path params don't blow up the label set.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration.Seconds())
	}
}
