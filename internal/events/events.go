// Package events публикует события жизненного цикла тренировок.
package events

import (
	"context"
	"time"

	domain "fiturae/internal/domain/workout"
)

// Типы событий о тренировках.
const (
	WorkoutCreated = "workout.created"
	WorkoutUpdated = "workout.updated"
	WorkoutDeleted = "workout.deleted"
)

// WorkoutEvent описывает событие, отправляемое после успешной записи в хранилище.
// Для workout.deleted заполнен только WorkoutID.
type WorkoutEvent struct {
	Type       string           `json:"type"`
	WorkoutID  string           `json:"workoutId"`
	UserID     string           `json:"userId,omitempty"`
	Workout    *WorkoutSnapshot `json:"workout,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// WorkoutSnapshot: состояние тренировки на момент события.
type WorkoutSnapshot struct {
	Name        string            `json:"name"`
	Day         string            `json:"day"`
	Description string            `json:"description"`
	Plan        []domain.Exercise `json:"plan"`
}

// Publisher отправляет события о тренировках во внешнюю систему.
type Publisher interface {
	Publish(ctx context.Context, event WorkoutEvent) error
	Close() error
}

// NewWorkoutEvent собирает событие по сохранённой тренировке.
func NewWorkoutEvent(eventType string, w *domain.Workout) WorkoutEvent {
	plan := w.Plan
	if plan == nil {
		plan = []domain.Exercise{}
	}
	return WorkoutEvent{
		Type:      eventType,
		WorkoutID: w.ID,
		UserID:    w.UserID,
		Workout: &WorkoutSnapshot{
			Name:        w.Name,
			Day:         w.Day.String(),
			Description: w.Description,
			Plan:        plan,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewDeletedEvent собирает событие об удалении тренировки.
func NewDeletedEvent(workoutID string) WorkoutEvent {
	return WorkoutEvent{
		Type:       WorkoutDeleted,
		WorkoutID:  workoutID,
		OccurredAt: time.Now().UTC(),
	}
}

// NopPublisher отбрасывает события. Используется, когда Kafka не настроена.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, WorkoutEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
