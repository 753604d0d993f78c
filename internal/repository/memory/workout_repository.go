package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "fiturae/internal/domain/workout"
	repo "fiturae/internal/repository/interfaces"
)

// WorkoutRepository хранит тренировки в памяти процесса.
// Порядок вставки хранится отдельным срезом идентификаторов.
type WorkoutRepository struct {
	mu       sync.RWMutex
	workouts map[string]domain.Workout
	order    []string
}

var _ repo.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository создает пустой репозиторий тренировок.
func NewWorkoutRepository() *WorkoutRepository {
	return &WorkoutRepository{workouts: make(map[string]domain.Workout)}
}

// FindByID возвращает копию тренировки по идентификатору.
func (r *WorkoutRepository) FindByID(_ context.Context, id string) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(w), nil
}

// FindAllByUserID возвращает тренировки владельца в порядке вставки.
func (r *WorkoutRepository) FindAllByUserID(_ context.Context, userID string) ([]*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Workout, 0)
	for _, id := range r.order {
		if w := r.workouts[id]; w.UserID == userID {
			result = append(result, clone(w))
		}
	}
	return result, nil
}

// Save вставляет новую тренировку или перезаписывает существующую на её месте в порядке.
func (r *WorkoutRepository) Save(_ context.Context, workout *domain.Workout) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *clone(*workout)
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	if _, exists := r.workouts[saved.ID]; !exists {
		r.order = append(r.order, saved.ID)
	}
	r.workouts[saved.ID] = saved
	return clone(saved), nil
}

// DeleteByID удаляет тренировку; отсутствие записи не считается ошибкой.
func (r *WorkoutRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workouts[id]; !exists {
		return false, nil
	}
	delete(r.workouts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// clone копирует тренировку вместе со срезом плана, чтобы вызывающий код
// не мог изменить хранимое состояние.
func clone(w domain.Workout) *domain.Workout {
	out := w
	if w.Plan != nil {
		out.Plan = make([]domain.Exercise, len(w.Plan))
		copy(out.Plan, w.Plan)
	}
	return &out
}
