package workout

import (
	"context"
	"errors"
	"fmt"

	userdomain "fiturae/internal/domain/user"
	domain "fiturae/internal/domain/workout"
	"fiturae/internal/events"
	"fiturae/internal/observability"
	repo "fiturae/internal/repository/interfaces"
	useruc "fiturae/internal/usecase/user"
	"fiturae/pkg/logger"
)

var (
	// ErrWorkoutNotFound возвращается, когда тренировка с указанным идентификатором не существует.
	ErrWorkoutNotFound = errors.New("workout not found")

	// ErrUserNotFound возвращается, когда владелец тренировки не существует.
	ErrUserNotFound = useruc.ErrUserNotFound
)

// Имена операций в метриках.
const (
	opAdd    = "add"
	opList   = "list"
	opGet    = "get"
	opEdit   = "edit"
	opDelete = "delete"
)

// UserLookup описывает то, что сценарию нужно от каталога пользователей.
// Реализация обязана возвращать useruc.ErrUserNotFound для отсутствующего пользователя.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*userdomain.User, error)
}

// Service описывает сценарии работы с тренировками.
type Service interface {
	// AddWorkout проверяет существование владельца и сохраняет новую тренировку.
	AddWorkout(ctx context.Context, details domain.Details) (*domain.Workout, error)

	// GetAllWorkoutsByUserID возвращает тренировки владельца в порядке создания.
	GetAllWorkoutsByUserID(ctx context.Context, userID string) ([]*domain.Workout, error)

	// GetWorkoutByID возвращает тренировку или ErrWorkoutNotFound.
	GetWorkoutByID(ctx context.Context, id string) (*domain.Workout, error)

	// EditWorkout полностью заменяет название, день, описание и план.
	// Идентификатор и владелец не меняются.
	EditWorkout(ctx context.Context, id string, edit domain.Edit) (*domain.Workout, error)

	// DeleteWorkout удаляет тренировку. Повторное удаление не является ошибкой.
	DeleteWorkout(ctx context.Context, id string) error
}

type service struct {
	users     UserLookup
	workouts  repo.WorkoutRepository
	publisher events.Publisher
	log       logger.Logger
}

// NewService создаёт сервис тренировок.
func NewService(users UserLookup, workouts repo.WorkoutRepository, publisher events.Publisher, log logger.Logger) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = logger.Default()
	}
	return &service{
		users:     users,
		workouts:  workouts,
		publisher: publisher,
		log:       log,
	}
}

func (s *service) AddWorkout(ctx context.Context, details domain.Details) (*domain.Workout, error) {
	if !details.Day.Valid() {
		observability.RecordWorkoutOperation(opAdd, observability.OutcomeError)
		return nil, domain.ErrInvalidDay
	}

	if err := s.ensureUser(ctx, details.UserID); err != nil {
		s.record(opAdd, err)
		return nil, err
	}

	saved, err := s.workouts.Save(ctx, domain.NewWorkout(details))
	if err != nil {
		observability.RecordWorkoutOperation(opAdd, observability.OutcomeError)
		return nil, fmt.Errorf("ошибка сохранения тренировки: %w", err)
	}

	observability.RecordWorkoutOperation(opAdd, observability.OutcomeOK)
	s.publish(ctx, events.NewWorkoutEvent(events.WorkoutCreated, saved))
	return saved, nil
}

func (s *service) GetAllWorkoutsByUserID(ctx context.Context, userID string) ([]*domain.Workout, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		s.record(opList, err)
		return nil, err
	}

	workouts, err := s.workouts.FindAllByUserID(ctx, userID)
	if err != nil {
		observability.RecordWorkoutOperation(opList, observability.OutcomeError)
		return nil, fmt.Errorf("ошибка получения тренировок пользователя %s: %w", userID, err)
	}
	if workouts == nil {
		workouts = []*domain.Workout{}
	}

	observability.RecordWorkoutOperation(opList, observability.OutcomeOK)
	return workouts, nil
}

func (s *service) GetWorkoutByID(ctx context.Context, id string) (*domain.Workout, error) {
	w, err := s.find(ctx, id)
	s.record(opGet, err)
	return w, err
}

func (s *service) EditWorkout(ctx context.Context, id string, edit domain.Edit) (*domain.Workout, error) {
	if !edit.Day.Valid() {
		observability.RecordWorkoutOperation(opEdit, observability.OutcomeError)
		return nil, domain.ErrInvalidDay
	}

	current, err := s.find(ctx, id)
	if err != nil {
		s.record(opEdit, err)
		return nil, err
	}

	saved, err := s.workouts.Save(ctx, current.Replace(edit))
	if err != nil {
		observability.RecordWorkoutOperation(opEdit, observability.OutcomeError)
		return nil, fmt.Errorf("ошибка сохранения тренировки %s: %w", id, err)
	}

	observability.RecordWorkoutOperation(opEdit, observability.OutcomeOK)
	s.publish(ctx, events.NewWorkoutEvent(events.WorkoutUpdated, saved))
	return saved, nil
}

func (s *service) DeleteWorkout(ctx context.Context, id string) error {
	deleted, err := s.workouts.DeleteByID(ctx, id)
	if err != nil {
		observability.RecordWorkoutOperation(opDelete, observability.OutcomeError)
		return fmt.Errorf("ошибка удаления тренировки %s: %w", id, err)
	}

	observability.RecordWorkoutOperation(opDelete, observability.OutcomeOK)
	// Повторное удаление ничего не меняет, событие не нужно
	if deleted {
		s.publish(ctx, events.NewDeletedEvent(id))
	}
	return nil
}

// ensureUser проверяет, что пользователь существует.
func (s *service) ensureUser(ctx context.Context, userID string) error {
	_, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, useruc.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("ошибка проверки пользователя %s: %w", userID, err)
	}
	return nil
}

// find возвращает тренировку, переводя отсутствие записи в ErrWorkoutNotFound.
func (s *service) find(ctx context.Context, id string) (*domain.Workout, error) {
	w, err := s.workouts.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска тренировки %s: %w", id, err)
	}
	return w, nil
}

// publish отправляет событие. Ошибка публикации только логируется:
// запись в хранилище к этому моменту уже выполнена.
func (s *service) publish(ctx context.Context, event events.WorkoutEvent) {
	err := s.publisher.Publish(ctx, event)
	observability.RecordEventPublished(event.Type, err)
	if err != nil {
		s.log.Error("не удалось опубликовать событие", map[string]any{
			"type":       event.Type,
			"workout_id": event.WorkoutID,
			"err":        err,
		})
	}
}

func (s *service) record(operation string, err error) {
	switch {
	case err == nil:
		observability.RecordWorkoutOperation(operation, observability.OutcomeOK)
	case errors.Is(err, ErrWorkoutNotFound), errors.Is(err, ErrUserNotFound):
		observability.RecordWorkoutOperation(operation, observability.OutcomeNotFound)
	default:
		observability.RecordWorkoutOperation(operation, observability.OutcomeError)
	}
}
