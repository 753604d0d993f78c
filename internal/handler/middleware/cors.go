package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fiturae/internal/config"
)

// CORS настраивает Cross-Origin Resource Sharing.
// Фронтенд ходит к API с cookie-сессией, поэтому при AllowCredentials
// источник указывается явно, а не через "*".
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	switch {
	case len(cfg.AllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	case gin.Mode() == gin.DebugMode:
		// В development без явного списка отражаем любой Origin.
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	default:
		// В production без явного списка кросс-доменные запросы запрещены.
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(corsConfig)
}
