package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger: хранилище, доступность которого проверяет /health/db.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает health check запросы
type Handler struct {
	store  Pinger
	driver string
	appEnv string
}

// NewHandler создает новый экземпляр health handler
func NewHandler(store Pinger, driver, appEnv string) *Handler {
	return &Handler{
		store:  store,
		driver: driver,
		appEnv: appEnv,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Driver  string `json:"driver,omitempty"`
	Message string `json:"message,omitempty"`
}

// Health проверяет работоспособность сервера
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "Сервер работает",
	})
}

// HealthDB проверяет доступность хранилища в пределах 5 секунд.
func (h *Handler) HealthDB(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Message: "Хранилище не инициализировано",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		errorMessage := "Хранилище недоступно"
		if h.appEnv != "production" {
			// В development показываем детали ошибки
			errorMessage = "Хранилище недоступно: " + err.Error()
		}

		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Driver:  h.driver,
			Message: errorMessage,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Driver:  h.driver,
		Message: "Хранилище доступно",
	})
}
