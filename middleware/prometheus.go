package middleware

import (
	"net/http"
	"time"

	"salon-wellness-backend/monitoring"

	"github.com/gin-gonic/gin"
)

// PrometheusMetrics counts requests per route. Requests to streamPaths are
// long-lived: they are tracked as open streams instead of by duration.
func PrometheusMetrics(streamPaths ...string) gin.HandlerFunc {
	streams := make(map[string]bool, len(streamPaths))
	for _, p := range streamPaths {
		streams[p] = true
	}
	return func(c *gin.Context) {
		start := time.Now()
		path := routeOf(c)
		stream := streams[path]
		if stream {
			monitoring.OpenStreams.Inc()
			defer monitoring.OpenStreams.Dec()
		}

		c.Next()

		monitoring.RequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			http.StatusText(c.Writer.Status()),
		).Inc()
		if !stream {
			monitoring.RequestDuration.WithLabelValues(c.Request.Method, path).
				Observe(time.Since(start).Seconds())
		}
	}
}
