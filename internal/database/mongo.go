package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"fiturae/internal/config"
)

// Имена коллекций документного хранилища.
const (
	UsersCollection    = "users"
	WorkoutsCollection = "workouts"
)

// MongoDB представляет подключение к документному хранилищу.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoConnection открывает подключение к MongoDB и проверяет его через ping.
//
// Вложенные документы декодируются в bson.M, чтобы план тренировки
// возвращался клиенту в том же виде, в каком был сохранён.
func NewMongoConnection(ctx context.Context, cfg *config.MongoConfig) (*MongoDB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация MongoDB не может быть nil")
	}

	log.Println("Инициализация подключения к MongoDB...")

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ошибка проверки подключения к MongoDB: %w", err)
	}

	log.Println("Подключение к MongoDB установлено успешно")

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

// EnsureIndexes создаёт индексы, на которые опираются репозитории:
// уникальный email пользователя (только для непустых значений) и поиск тренировок по владельцу.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.Database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("idx_users_email_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса users.email: %w", err)
	}

	_, err = m.Database.Collection(WorkoutsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("idx_workouts_user_id"),
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса workouts.user_id: %w", err)
	}

	return nil
}

// Ping проверяет доступность MongoDB.
func (m *MongoDB) Ping(ctx context.Context) error {
	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ошибка ping MongoDB: %w", err)
	}
	return nil
}

// Close отключается от MongoDB.
func (m *MongoDB) Close() error {
	if err := m.Client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("ошибка закрытия подключения к MongoDB: %w", err)
	}
	log.Println("Подключение к MongoDB закрыто")
	return nil
}
