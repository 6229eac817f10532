package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/folio/metrics"
)

// Metrics records request counts and latencies by route, and refreshes the
// active-session gauge from sessions.
func Metrics(m *metrics.Metrics, sessions func() int) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		if sessions != nil {
			m.ActiveSessions.Set(float64(sessions()))
		}
	}
}
