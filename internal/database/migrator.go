package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // PostgreSQL driver

	"fiturae/internal/config"
	"fiturae/internal/database/migrations"
)

var (
	// ErrNoChange возвращается, когда нет миграций для применения.
	ErrNoChange = errors.New("no change")

	// ErrDirtyState возвращается, когда миграции находятся в "грязном" состоянии.
	// Это означает, что миграция была прервана и требует ручного вмешательства.
	ErrDirtyState = errors.New("database is in dirty state")
)

// Migrator управляет версиями схемы PostgreSQL через golang-migrate.
// Для MongoDB миграции не нужны: индексы создаёт MongoDB.EnsureIndexes.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigratorFromConfig открывает отдельное подключение через lib/pq
// и создает мигратор, который владеет этим подключением.
func NewMigratorFromConfig(cfg *config.DatabaseConfig) (*Migrator, error) {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия подключения: %w", err)
	}

	m, err := newMigrate(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &Migrator{m: m}, nil
}

// newMigrate собирает migrate.Migrate из встроенных SQL-файлов и драйвера PostgreSQL.
func newMigrate(sqlDB *sql.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания драйвера PostgreSQL: %w", err)
	}

	source, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания источника миграций: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания экземпляра migrate: %w", err)
	}
	return m, nil
}

// Close освобождает источник миграций и закрывает подключение.
func (m *Migrator) Close() error {
	if m.m == nil {
		return nil
	}
	sourceErr, dbErr := m.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("ошибка закрытия источника миграций: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("ошибка закрытия подключения к БД: %w", dbErr)
	}
	return nil
}

// wrap переводит migrate.ErrNoChange в ErrNoChange и добавляет контекст к остальным ошибкам.
func wrap(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, migrate.ErrNoChange):
		return ErrNoChange
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Up применяет все доступные миграции.
// Возвращает ErrNoChange, если схема уже актуальна.
func (m *Migrator) Up() error {
	return wrap(m.m.Up(), "ошибка применения миграций")
}

// Down откатывает одну последнюю миграцию.
func (m *Migrator) Down() error {
	return wrap(m.m.Steps(-1), "ошибка отката миграции")
}

// Steps применяет (n > 0) или откатывает (n < 0) N миграций.
func (m *Migrator) Steps(n int) error {
	return wrap(m.m.Steps(n), fmt.Sprintf("ошибка выполнения %d шагов миграции", n))
}

// Version возвращает текущую версию схемы и флаг "грязного" состояния.
// Если миграции не применялись, версия будет 0 и dirty = false.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("ошибка получения версии: %w", err)
	}
	return version, dirty, nil
}

// Force устанавливает версию миграции без применения миграций.
// Используется для восстановления после "грязного" состояния.
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("ошибка принудительной установки версии %d: %w", version, err)
	}
	log.Printf("migrations forced: version=%d", version)
	return nil
}

// MigrateUp применяет все миграции, игнорируя ErrNoChange.
// Вызывается при старте сервера с DB_AUTO_MIGRATE=true и интеграционными тестами.
func MigrateUp(cfg *config.DatabaseConfig) (err error) {
	migrator, err := NewMigratorFromConfig(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); err == nil {
			err = closeErr
		}
	}()

	if _, dirty, err := migrator.Version(); err != nil {
		return err
	} else if dirty {
		return ErrDirtyState
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, ErrNoChange) {
		return err
	}
	return nil
}
