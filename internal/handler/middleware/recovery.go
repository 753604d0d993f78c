package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"fiturae/internal/handler/response"
)

// Recovery middleware для обработки паник и предотвращения краша приложения.
// В debug-режиме текст паники возвращается клиенту в details.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[PANIC] %s %s from %s: %v\n%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			recovered,
			debug.Stack(),
		)

		var details interface{}
		if gin.Mode() == gin.DebugMode {
			details = fmt.Sprintf("%v", recovered)
		}

		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Произошла непредвиденная ошибка", details)
	})
}
