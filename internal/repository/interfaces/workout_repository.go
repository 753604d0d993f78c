package interfaces

import (
	"context"

	domain "fiturae/internal/domain/workout"
)

// WorkoutRepository определяет контракт хранилища тренировок.
type WorkoutRepository interface {
	// FindByID возвращает тренировку по идентификатору.
	// Возвращает (nil, ErrNotFound), если тренировка не найдена.
	FindByID(ctx context.Context, id string) (*domain.Workout, error)

	// FindAllByUserID возвращает тренировки пользователя в порядке их создания.
	// Пустой результат не является ошибкой.
	FindAllByUserID(ctx context.Context, userID string) ([]*domain.Workout, error)

	// Save сохраняет тренировку: назначает идентификатор новой записи
	// либо полностью перезаписывает запись с тем же идентификатором.
	Save(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)

	// DeleteByID удаляет тренировку и сообщает, была ли запись удалена.
	// Отсутствие записи ошибкой не считается: (false, nil).
	DeleteByID(ctx context.Context, id string) (bool, error)
}
