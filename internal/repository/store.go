// Package repository собирает хранилища пользователей и тренировок
// для выбранного драйвера.
package repository

import (
	"context"
	"fmt"
	"log"

	"fiturae/internal/config"
	"fiturae/internal/database"
	repo "fiturae/internal/repository/interfaces"
	"fiturae/internal/repository/memory"
	mongorepo "fiturae/internal/repository/mongo"
	pgrepo "fiturae/internal/repository/postgres"
)

// Store объединяет оба хранилища и управляет подключением к базе.
type Store struct {
	Users    repo.UserRepository
	Workouts repo.WorkoutRepository
	Driver   string

	ping  func(ctx context.Context) error
	close func() error
}

// Open подключается к хранилищу, заданному STORAGE_DRIVER.
// Для Postgres при DB_AUTO_MIGRATE=true применяются миграции,
// для MongoDB создаются индексы.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return openPostgres(cfg)
	case config.StorageDriverMongo:
		return openMongo(ctx, cfg)
	case config.StorageDriverMemory:
		log.Println("Используется хранилище в памяти: данные не сохраняются между перезапусками")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища: %q", cfg.Storage.Driver)
	}
}

func openPostgres(cfg *config.Config) (*Store, error) {
	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(&cfg.Database); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ошибка применения миграций: %w", err)
		}
	}

	return NewPostgresStore(db), nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	mdb, err := database.NewMongoConnection(ctx, &cfg.Mongo)
	if err != nil {
		return nil, err
	}

	if err := mdb.EnsureIndexes(ctx); err != nil {
		_ = mdb.Close()
		return nil, err
	}

	return &Store{
		Users:    mongorepo.NewUserRepository(mdb.Database),
		Workouts: mongorepo.NewWorkoutRepository(mdb.Database),
		Driver:   config.StorageDriverMongo,
		ping:     mdb.Ping,
		close:    mdb.Close,
	}, nil
}

// NewPostgresStore оборачивает уже открытое подключение к Postgres.
func NewPostgresStore(db *database.DB) *Store {
	return &Store{
		Users:    pgrepo.NewUserRepository(db.DB),
		Workouts: pgrepo.NewWorkoutRepository(db.DB),
		Driver:   config.StorageDriverPostgres,
		ping:     db.Ping,
		close:    db.Close,
	}
}

// NewMemoryStore создаёт хранилище в памяти процесса.
func NewMemoryStore() *Store {
	return &Store{
		Users:    memory.NewUserRepository(),
		Workouts: memory.NewWorkoutRepository(),
		Driver:   config.StorageDriverMemory,
	}
}

// Ping проверяет доступность хранилища. Хранилище в памяти доступно всегда.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close закрывает подключение к хранилищу.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
