package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

// Config хранит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	CORS     CORSConfig
	Session  SessionConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	AppEnv   string // Окружение приложения: development, production, etc.
}

// ServerConfig хранит конфигурацию сервера
type ServerConfig struct {
	Host string
	Port string
}

// StorageConfig определяет, какое хранилище используется для пользователей и тренировок.
type StorageConfig struct {
	Driver string // postgres, mongo или memory
}

// DatabaseConfig хранит конфигурацию базы данных
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int           // Максимальное количество открытых соединений
	MaxIdleConns    int           // Максимальное количество неактивных соединений
	ConnMaxLifetime time.Duration // Максимальное время жизни соединения
	ConnMaxIdleTime time.Duration // Максимальное время простоя соединения
	AutoMigrate     bool          // Применять миграции при старте сервера
}

// MongoConfig хранит конфигурацию документного хранилища MongoDB.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// CORSConfig хранит настройки Cross-Origin Resource Sharing.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// SessionConfig хранит настройки cookie-сессии.
type SessionConfig struct {
	Name   string
	Secret string
	MaxAge int // В секундах
	Secure bool
}

// AuthConfig определяет требования к аутентификации API.
type AuthConfig struct {
	RequireSession bool // Требовать сессию для /api/workouts и /api/users
}

// OAuthConfig хранит настройки входа через GitHub.
type OAuthConfig struct {
	ClientID        string
	ClientSecret    string
	RedirectURL     string // Адрес callback-эндпоинта этого сервера
	SuccessRedirect string // Куда отправить браузер после успешного входа
	UserInfoURL     string
}

// JWTConfig хранит настройки подписи OAuth state-токенов.
type JWTConfig struct {
	Secret   string
	Issuer   string
	StateTTL time.Duration
}

// KafkaConfig хранит настройки публикации событий о тренировках.
// Пустой список брокеров отключает публикацию.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// DSN возвращает строку подключения к базе данных
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Address возвращает адрес сервера (host:port)
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// Enabled сообщает, настроена ли публикация событий.
func (k *KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (если существует)
	// В production переменные окружения должны быть установлены напрямую
	_ = godotenv.Load()

	cfg := &Config{}

	// Загружаем конфигурацию сервера
	cfg.Server.Host = getEnv("SERVER_HOST", "localhost")
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")

	cfg.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres))

	// Загружаем конфигурацию базы данных
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.DBName = getEnv("DB_NAME", "fiturae")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.AutoMigrate = getEnvAsBool("DB_AUTO_MIGRATE", false)

	// Загружаем настройки пула соединений
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	cfg.Database.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	cfg.Database.ConnMaxIdleTime = getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute)

	cfg.Mongo.URI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	cfg.Mongo.Database = getEnv("MONGO_DB", "fiturae")
	cfg.Mongo.ConnectTimeout = getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)

	cfg.CORS.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil)
	cfg.CORS.AllowedMethods = getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	cfg.CORS.AllowedHeaders = getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"})
	cfg.CORS.ExposedHeaders = getEnvAsSlice("CORS_EXPOSED_HEADERS", nil)
	cfg.CORS.AllowCredentials = getEnvAsBool("CORS_ALLOW_CREDENTIALS", true)
	cfg.CORS.MaxAge = getEnvAsDuration("CORS_MAX_AGE", 12*time.Hour)

	cfg.Session.Name = getEnv("SESSION_NAME", "fiturae_session")
	cfg.Session.Secret = getEnv("SESSION_SECRET", "")
	cfg.Session.MaxAge = getEnvAsInt("SESSION_MAX_AGE", 7*24*60*60)
	cfg.Session.Secure = getEnvAsBool("SESSION_SECURE", false)

	cfg.Auth.RequireSession = getEnvAsBool("AUTH_REQUIRE_SESSION", true)

	cfg.OAuth.ClientID = getEnv("GITHUB_CLIENT_ID", "")
	cfg.OAuth.ClientSecret = getEnv("GITHUB_CLIENT_SECRET", "")
	cfg.OAuth.RedirectURL = getEnv("GITHUB_REDIRECT_URL", "http://localhost:8080/login/oauth2/code/github")
	cfg.OAuth.SuccessRedirect = getEnv("OAUTH_SUCCESS_REDIRECT", "/home")
	cfg.OAuth.UserInfoURL = getEnv("GITHUB_USER_INFO_URL", "https://api.github.com/user")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "")
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", "fiturae")
	cfg.JWT.StateTTL = getEnvAsDuration("JWT_STATE_TTL", 10*time.Minute)

	cfg.Kafka.Brokers = getEnvAsSlice("KAFKA_BROKERS", nil)
	cfg.Kafka.Topic = getEnv("KAFKA_WORKOUT_TOPIC", "fiturae.workouts")

	// Загружаем окружение приложения
	cfg.AppEnv = getEnv("APP_ENV", "development")

	// Валидируем конфигурацию
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	// Вне production пустые секреты заменяются случайными: сессии и state-токены
	// живут до перезапуска процесса.
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = randomSecret()
		log.Println("SESSION_SECRET не задан, используется временный секрет")
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		log.Println("JWT_SECRET не задан, используется временный секрет")
	}

	return cfg, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("SERVER_HOST не может быть пустым")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT не может быть пустым")
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST не может быть пустым")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER не может быть пустым")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("DB_NAME не может быть пустым")
		}
	case StorageDriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI не может быть пустым")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_DB не может быть пустым")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("неизвестный STORAGE_DRIVER: %q", c.Storage.Driver)
	}

	if c.AppEnv == "production" {
		if c.Session.Secret == "" {
			return fmt.Errorf("SESSION_SECRET обязателен в production")
		}
		if c.JWT.Secret == "" {
			return fmt.Errorf("JWT_SECRET обязателен в production")
		}
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvAsBool получает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvAsDuration получает переменную окружения как time.Duration или возвращает значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvAsSlice разбирает список значений, разделённых запятыми.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// randomSecret генерирует 32 случайных байта в hex.
func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("не удалось сгенерировать секрет: %v", err))
	}
	return hex.EncodeToString(buf)
}
