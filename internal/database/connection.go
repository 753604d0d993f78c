package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fiturae/internal/config"
)

// Константы для значений по умолчанию пула соединений
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 10 * time.Minute
)

// DB представляет подключение к базе данных
type DB struct {
	*gorm.DB
}

// NewConnection создает новое подключение к PostgreSQL через GORM.
// Принимает конфигурацию базы данных и окружение приложения для настройки логирования.
//
// Пример использования:
//
//	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func NewConnection(cfg *config.DatabaseConfig, appEnv string) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация базы данных не может быть nil")
	}

	log.Println("Инициализация подключения к PostgreSQL...")

	gormLogger := logger.Default
	if strings.ToLower(appEnv) == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	// TranslateError превращает нарушения уникальности в gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}
	configurePool(sqlDB, cfg)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка проверки подключения к базе данных: %w", err)
	}

	log.Println("Подключение к PostgreSQL установлено успешно")

	return &DB{DB: db}, nil
}

// configurePool применяет настройки пула из конфигурации,
// подставляя значения по умолчанию для незаданных полей.
func configurePool(sqlDB *sql.DB, cfg *config.DatabaseConfig) {
	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns == 0 {
		maxOpenConns = defaultMaxOpenConns
	}
	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = defaultMaxIdleConns
	}
	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime == 0 {
		connMaxLifetime = defaultConnMaxLifetime
	}
	connMaxIdleTime := cfg.ConnMaxIdleTime
	if connMaxIdleTime == 0 {
		connMaxIdleTime = defaultConnMaxIdleTime
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// Close закрывает подключение к базе данных и освобождает пул.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB для закрытия: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия подключения к базе данных: %w", err)
	}

	log.Println("Подключение к PostgreSQL закрыто")
	return nil
}

// Ping проверяет доступность базы данных в пределах контекста.
// Используется health-check эндпоинтом.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ошибка ping базы данных: %w", err)
	}

	return nil
}
