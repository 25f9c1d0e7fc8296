package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-hub-api/internal/service"
)

// Metrics records per-request counters and latency on the metrics service.
// Scrape and probe endpoints are excluded so they do not pollute the series.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || isProbePath(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// Prefer the route template so path params collapse into one label.
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func isProbePath(path string) bool {
	switch {
	case path == "/metrics", path == "/health", path == "/ready":
		return true
	case strings.HasPrefix(path, "/docs"):
		return true
	}
	return false
}
