package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"interview-ai/internal/app/metrics"
)

// Metrics records request count and latency per matched route.
func Metrics(recorder *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.ObserveHTTP(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
