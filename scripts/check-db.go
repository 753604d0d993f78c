package main

import (
	"context"
	"log"
	"os"
	"time"

	"fiturae/internal/config"
	"fiturae/internal/repository"
)

// dockerHosts: имена сервисов docker-compose, недоступные с хоста.
var dockerHosts = map[string]bool{"postgres": true, "mongo": true}

func inDocker() bool {
	if os.Getenv("container") != "" {
		return true
	}
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

func main() {
	log.Println("Проверка подключения к хранилищу...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Вне Docker имена compose-сервисов заменяются на localhost
	if !inDocker() {
		if dockerHosts[cfg.Database.Host] {
			log.Printf("DB_HOST=%s недоступен вне Docker, используется localhost", cfg.Database.Host)
			cfg.Database.Host = "localhost"
		}
		if cfg.Mongo.URI == "mongodb://mongo:27017" {
			log.Println("MONGO_URI указывает на compose-сервис, используется localhost")
			cfg.Mongo.URI = "mongodb://localhost:27017"
		}
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		log.Printf("Postgres: host=%s port=%s user=%s db=%s sslmode=%s",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.DBName, cfg.Database.SSLMode)
	case config.StorageDriverMongo:
		log.Printf("MongoDB: db=%s", cfg.Mongo.Database)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к хранилищу: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения: %v", err)
		}
	}()

	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Ошибка проверки подключения (Ping): %v", err)
	}

	// Чтение из обеих коллекций проверяет, что схема или индексы на месте
	if _, err := store.Workouts.FindAllByUserID(ctx, "check-db"); err != nil {
		log.Fatalf("Ошибка тестового запроса к тренировкам: %v", err)
	}

	log.Printf("Хранилище %s готово к работе", store.Driver)
}
