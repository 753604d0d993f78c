package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fiturae/internal/database"
	domain "fiturae/internal/domain/user"
	repo "fiturae/internal/repository/interfaces"
)

// mongoUser: документ коллекции users.
type mongoUser struct {
	ID        docID     `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	ImageURL  string    `bson:"imageUrl"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:       string(d.ID),
		Name:     d.Name,
		Email:    d.Email,
		ImageURL: d.ImageURL,
	}
}

// UserRepository реализует repo.UserRepository поверх MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает репозиторий пользователей на коллекции users.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(database.UsersCollection)}
}

// FindByID возвращает пользователя по идентификатору.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": idKey(id)})
}

// FindByEmail возвращает пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, repo.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc mongoUser
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// Save создает пользователя или перезаписывает документ с тем же _id.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	saved := *user
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	update := bson.M{
		"$set": bson.M{
			"name":     saved.Name,
			"email":    saved.Email,
			"imageUrl": saved.ImageURL,
		},
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}

	_, err := r.coll.UpdateByID(ctx, idKey(saved.ID), update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repo.ErrEmailExists
		}
		return nil, err
	}
	return &saved, nil
}
