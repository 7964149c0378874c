package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"agroledger/internal/infrastructure/metrics"
)

// Metrics records every request on m, labelled by the matched route pattern.
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.Observe(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
