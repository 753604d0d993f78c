package main

import (
	"context"
	"log"

	"fiturae/internal/config"
	"fiturae/internal/events"
	"fiturae/internal/repository"
	"fiturae/internal/server"
	"fiturae/pkg/logger"
)

// @title        Fiturae API
// @version      1.0
// @description  Пользователи и тренировки фитнес-приложения.
// @BasePath     /
func main() {
	log.Println("Fiturae Server Starting...")

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	log.Printf("Конфигурация загружена успешно: env=%s storage=%s", cfg.AppEnv, cfg.Storage.Driver)

	store, err := repository.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к хранилищу: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Ошибка закрытия хранилища: %v", err)
		}
	}()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(&cfg.Kafka, logger.Named("events"))
		log.Printf("События о тренировках публикуются в Kafka: topic=%s brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("Ошибка закрытия издателя событий: %v", err)
		}
	}()

	srv := server.NewServer(cfg, store, publisher)
	if err := srv.Start(); err != nil {
		log.Printf("Сервер остановлен с ошибкой: %v", err)
		return
	}
}
