package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Коды ошибок API.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeUnauthorized       = "unauthorized"
	CodeEmailAlreadyExists = "email_already_exists"
	CodeInternal           = "internal_error"
)

// ErrorBody описывает стандартный формат ошибки API.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorEnvelope: обёртка, в которой ErrorBody отдаётся клиенту.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Error отправляет JSON-ответ с ошибкой в едином формате и прерывает цепочку обработчиков.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Text отправляет ответ с телом в виде простого текста.
// Используется для доменных 404 ("The user is unknown").
func Text(c *gin.Context, status int, message string) {
	c.Abort()
	c.String(status, message)
}

// Internal отправляет стандартную 500.
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "Внутренняя ошибка сервера", nil)
}
