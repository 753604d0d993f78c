package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fiturae/internal/database"
	domain "fiturae/internal/domain/workout"
	repo "fiturae/internal/repository/interfaces"
)

// mongoWorkout: документ коллекции workouts. Имена полей совпадают
// с документами прежнего бэкенда; _id читается и как строка, и как ObjectId.
type mongoWorkout struct {
	ID          docID      `bson:"_id"`
	UserID      string     `bson:"user_id"`
	Name        string     `bson:"workout_name"`
	Day         string     `bson:"workout_day"`
	Description string     `bson:"workout_description"`
	Plan        []bson.M   `bson:"workout_plan"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty"`
}

func (d *mongoWorkout) toDomain() *domain.Workout {
	plan := make([]domain.Exercise, 0, len(d.Plan))
	for _, entry := range d.Plan {
		plan = append(plan, domain.Exercise(entry))
	}
	return &domain.Workout{
		ID:          string(d.ID),
		UserID:      d.UserID,
		Name:        d.Name,
		Day:         domain.Day(d.Day),
		Description: d.Description,
		Plan:        plan,
	}
}

func planToBSON(plan []domain.Exercise) []bson.M {
	docs := make([]bson.M, 0, len(plan))
	for _, entry := range plan {
		docs = append(docs, bson.M(entry))
	}
	return docs
}

// WorkoutRepository реализует repo.WorkoutRepository поверх MongoDB.
type WorkoutRepository struct {
	coll *mongo.Collection
}

var _ repo.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository создает репозиторий тренировок на коллекции workouts.
func NewWorkoutRepository(db *mongo.Database) *WorkoutRepository {
	return &WorkoutRepository{coll: db.Collection(database.WorkoutsCollection)}
}

// FindByID возвращает тренировку по идентификатору.
func (r *WorkoutRepository) FindByID(ctx context.Context, id string) (*domain.Workout, error) {
	var doc mongoWorkout
	err := r.coll.FindOne(ctx, bson.M{"_id": idKey(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindAllByUserID возвращает тренировки владельца в порядке создания.
func (r *WorkoutRepository) FindAllByUserID(ctx context.Context, userID string) ([]*domain.Workout, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []mongoWorkout
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка чтения тренировок пользователя %s: %w", userID, err)
	}

	workouts := make([]*domain.Workout, 0, len(docs))
	for i := range docs {
		workouts = append(workouts, docs[i].toDomain())
	}
	return workouts, nil
}

// Save вставляет тренировку или перезаписывает документ с тем же _id.
// created_at выставляется только при вставке.
func (r *WorkoutRepository) Save(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	saved := *workout
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"user_id":             saved.UserID,
			"workout_name":        saved.Name,
			"workout_day":         string(saved.Day),
			"workout_description": saved.Description,
			"workout_plan":        planToBSON(saved.Plan),
			"updated_at":          now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	if _, err := r.coll.UpdateByID(ctx, idKey(saved.ID), update, options.Update().SetUpsert(true)); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteByID удаляет документ; отсутствие документа не считается ошибкой.
func (r *WorkoutRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": idKey(id)})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
