package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
)

// MetricsMiddleware collects HTTP metrics for Prometheus. Paths are the
// route templates (e.g. /api/v1/users/:username) so label cardinality
// stays bounded.
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		method := c.Request.Method
		path := routePath(c)

		m.HTTPActiveRequests.WithLabelValues(method, path).Inc()
		defer m.HTTPActiveRequests.WithLabelValues(method, path).Dec()

		startTime := time.Now()
		c.Next()

		// Numeric status labels keep status=~"5.." queries working
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(startTime).Seconds())

		if size := c.Writer.Size(); size > 0 {
			m.HTTPResponseSize.WithLabelValues(method, path, status).Observe(float64(size))
		}
	}
}

func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
