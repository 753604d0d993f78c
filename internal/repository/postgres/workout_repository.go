package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "fiturae/internal/domain/workout"
	repo "fiturae/internal/repository/interfaces"
)

// pgWorkout представляет ORM-модель для таблицы workouts.
// План хранится целиком в jsonb, seq задаёт порядок вставки.
type pgWorkout struct {
	ID          string    `gorm:"column:id;type:text;primaryKey"`
	Seq         int64     `gorm:"column:seq;->"`
	UserID      string    `gorm:"column:user_id;type:text;not null"`
	Name        string    `gorm:"column:name;type:text;not null"`
	Day         string    `gorm:"column:day;type:text;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Plan        string    `gorm:"column:plan;type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (pgWorkout) TableName() string {
	return "workouts"
}

// WorkoutRepository реализует repo.WorkoutRepository на GORM/Postgres.
type WorkoutRepository struct {
	db *gorm.DB
}

var _ repo.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository создает новый репозиторий тренировок.
func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (m *pgWorkout) toDomain() (*domain.Workout, error) {
	plan := []domain.Exercise{}
	if len(m.Plan) > 0 {
		if err := json.Unmarshal([]byte(m.Plan), &plan); err != nil {
			return nil, fmt.Errorf("ошибка декодирования плана тренировки %s: %w", m.ID, err)
		}
	}

	return &domain.Workout{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Day:         domain.Day(m.Day),
		Description: m.Description,
		Plan:        plan,
	}, nil
}

func fromDomainWorkout(w *domain.Workout) (*pgWorkout, error) {
	plan := w.Plan
	if plan == nil {
		plan = []domain.Exercise{}
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("ошибка кодирования плана тренировки: %w", err)
	}

	now := time.Now().UTC()
	return &pgWorkout{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Day:         string(w.Day),
		Description: w.Description,
		Plan:        string(raw),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// FindByID возвращает тренировку по идентификатору.
func (r *WorkoutRepository) FindByID(ctx context.Context, id string) (*domain.Workout, error) {
	var model pgWorkout
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain()
}

// FindAllByUserID возвращает тренировки пользователя в порядке вставки.
func (r *WorkoutRepository) FindAllByUserID(ctx context.Context, userID string) ([]*domain.Workout, error) {
	var models []pgWorkout
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("seq ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	workouts := make([]*domain.Workout, 0, len(models))
	for i := range models {
		w, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// Save вставляет новую тренировку или полностью перезаписывает существующую.
// При перезаписи сохраняются seq и created_at, поэтому порядок в списке не меняется.
func (r *WorkoutRepository) Save(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	saved := *workout
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	model, err := fromDomainWorkout(&saved)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "name", "day", "description", "plan", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// DeleteByID удаляет тренировку; отсутствие записи не считается ошибкой.
func (r *WorkoutRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&pgWorkout{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
