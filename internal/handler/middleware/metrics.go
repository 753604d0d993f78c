package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"fiturae/internal/observability"
)

// Metrics учитывает каждый запрос в Prometheus по шаблону маршрута.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
