package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerStructured логирует каждый запрос в формате key=value.
// Для запросов с сессией добавляется user_id. Query-строка не пишется:
// в callback OAuth она содержит code и state.
func LoggerStructured() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		userID := "-"
		if principal, ok := PrincipalFrom(c); ok {
			userID = principal.UserID
		}

		log.Printf("method=%s path=%s status=%d latency=%v ip=%s user_id=%s errors=%q",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			userID,
			c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
