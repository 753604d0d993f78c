package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fiturae/docs" // Swagger-документ
	"fiturae/internal/config"
	"fiturae/internal/events"
	authhandler "fiturae/internal/handler/auth"
	"fiturae/internal/handler/health"
	"fiturae/internal/handler/middleware"
	userhandler "fiturae/internal/handler/user"
	workouthandler "fiturae/internal/handler/workout"
	"fiturae/internal/repository"
	"fiturae/internal/session"
	useruc "fiturae/internal/usecase/user"
	workoutuc "fiturae/internal/usecase/workout"
	jwtsvc "fiturae/pkg/jwt"
	"fiturae/pkg/logger"
	"fiturae/pkg/oauth"
)

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	store      *repository.Store
	cfg        *config.Config

	sessions       *session.Manager
	authHandler    *authhandler.Handler
	userHandler    *userhandler.Handler
	workoutHandler *workouthandler.Handler
}

// Option меняет зависимости сервера. Используется в тестах.
type Option func(*options)

type options struct {
	provider oauth.Provider
}

// WithOAuthProvider подменяет OAuth-провайдера.
func WithOAuthProvider(p oauth.Provider) Option {
	return func(o *options) { o.provider = p }
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config, store *repository.Store, publisher events.Publisher, opts ...Option) *Server {
	// Устанавливаем режим Gin в зависимости от окружения
	switch cfg.AppEnv {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.provider == nil {
		o.provider = oauth.NewGitHubProvider(&cfg.OAuth, logger.Named("oauth"))
	}

	s := &Server{
		router:   gin.New(),
		store:    store,
		cfg:      cfg,
		sessions: session.NewManager(&cfg.Session),
	}

	// Инициализируем зависимости один раз
	userService := useruc.NewService(store.Users)
	workoutService := workoutuc.NewService(userService, store.Workouts, publisher, logger.Named("workouts"))

	s.authHandler = authhandler.NewHandler(userService, o.provider, jwtsvc.NewService(&cfg.JWT), s.sessions, cfg.OAuth.SuccessRedirect)
	s.userHandler = userhandler.NewHandler(userService)
	s.workoutHandler = workouthandler.NewHandler(workoutService)

	// Настраиваем middleware и роуты
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Recovery middleware - должен быть первым для перехвата паник
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.Metrics())
	s.router.Use(middleware.LoggerStructured())
	s.router.Use(middleware.CORS(&s.cfg.CORS))
	// Принципал сессии нужен логгеру и защищённым группам
	s.router.Use(middleware.Session(s.sessions))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()
	s.setupOAuthRoutes()

	api := s.router.Group("/api")
	s.setupAuthRoutes(api)
	s.setupUserRoutes(api)
	s.setupWorkoutRoutes(api)
}

// setupHealthRoutes настраивает служебные эндпоинты.
func (s *Server) setupHealthRoutes() {
	healthHandler := health.NewHandler(s.store, s.store.Driver, s.cfg.AppEnv)
	// GET /health: жив ли процесс.
	s.router.GET("/health", healthHandler.Health)
	// GET /health/db: доступность хранилища.
	s.router.GET("/health/db", healthHandler.HealthDB)
	// GET /metrics: метрики Prometheus.
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if s.cfg.AppEnv != "production" {
		// GET /swagger/index.html: Swagger UI.
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// setupOAuthRoutes настраивает вход через GitHub.
func (s *Server) setupOAuthRoutes() {
	s.router.GET("/oauth2/authorization/github", s.authHandler.Login)
	s.router.GET("/login/oauth2/code/github", s.authHandler.Callback)
}

// setupAuthRoutes настраивает эндпоинты текущей сессии.
func (s *Server) setupAuthRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		// GET /api/auth/me: пользователь из атрибутов OAuth-сессии.
		authGroup.GET("/me", s.authHandler.Me)
		// POST /api/auth/logout: завершить сессию.
		authGroup.POST("/logout", s.authHandler.Logout)
	}
}

// setupUserRoutes настраивает каталог пользователей.
func (s *Server) setupUserRoutes(api *gin.RouterGroup) {
	userGroup := api.Group("/users")
	if s.cfg.Auth.RequireSession {
		userGroup.Use(middleware.RequireSession())
	}
	{
		userGroup.POST("", s.userHandler.AddUser)
		userGroup.GET("/:id", s.userHandler.GetUserByID)
	}
}

// setupWorkoutRoutes настраивает эндпоинты тренировок.
func (s *Server) setupWorkoutRoutes(api *gin.RouterGroup) {
	workoutGroup := api.Group("/workouts")
	if s.cfg.Auth.RequireSession {
		workoutGroup.Use(middleware.RequireSession())
	}
	{
		workoutGroup.POST("", s.workoutHandler.AddWorkout)
		workoutGroup.GET("/:userId", s.workoutHandler.GetAllWorkoutsByUserID)
		workoutGroup.GET("/details/:id", s.workoutHandler.GetWorkoutByID)
		workoutGroup.PUT("/:id", s.workoutHandler.EditWorkout)
		workoutGroup.DELETE("/:id", s.workoutHandler.DeleteWorkout)
	}
}

// Start запускает HTTP сервер с graceful shutdown
func (s *Server) Start() error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErr := make(chan error, 1)

	go func() {
		log.Printf("HTTP сервер запущен на %s", address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Printf("Получен сигнал %v для остановки сервера...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Println("HTTP сервер успешно остановлен")
	return nil
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
