package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fiturae/internal/handler/response"
	"fiturae/internal/session"
)

// ContextPrincipalKey: ключ gin-контекста, под которым лежит *session.Principal.
const ContextPrincipalKey = "principal"

// Session загружает принципала из cookie-сессии в контекст запроса.
// Запросы без сессии пропускаются дальше без принципала.
func Session(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := sessions.Principal(c.Request)
		if err == nil {
			c.Set(ContextPrincipalKey, principal)
		}
		c.Next()
	}
}

// RequireSession отвечает 401, если в контексте нет принципала.
// Ставится после Session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFrom(c); !ok {
			log.Printf("request without session: method=%s path=%s", c.Request.Method, c.Request.URL.Path)
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Требуется вход через GitHub", nil)
			return
		}
		c.Next()
	}
}

// PrincipalFrom достаёт принципала, положенного middleware Session.
func PrincipalFrom(c *gin.Context) (*session.Principal, bool) {
	value, ok := c.Get(ContextPrincipalKey)
	if !ok {
		return nil, false
	}
	principal, ok := value.(*session.Principal)
	return principal, ok && principal != nil
}
