package user

import (
	"context"
	"errors"
	"fmt"

	domain "fiturae/internal/domain/user"
	repo "fiturae/internal/repository/interfaces"
)

// ErrUserNotFound возвращается, когда пользователь с указанным идентификатором не существует.
var ErrUserNotFound = errors.New("user not found")

// Details описывает данные для явной регистрации пользователя.
type Details struct {
	Name     string
	Email    string
	ImageURL string
}

// OAuthIdentity: атрибуты пользователя, полученные от OAuth-провайдера.
type OAuthIdentity struct {
	ID        string // Идентификатор аккаунта у провайдера
	Login     string
	Email     string
	AvatarURL string
}

// Service описывает usecase-слой каталога пользователей.
type Service interface {
	// AddUser создаёт пользователя с новым идентификатором.
	// Возвращает repo.ErrEmailExists, если непустой email уже занят.
	AddUser(ctx context.Context, details Details) (*domain.User, error)

	// GetUserByID возвращает пользователя или ErrUserNotFound.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	// LoginWithOAuth находит пользователя по идентификатору провайдера,
	// затем по email, и создаёт его при первом входе.
	LoginWithOAuth(ctx context.Context, identity OAuthIdentity) (*domain.User, error)
}

type service struct {
	users repo.UserRepository
}

// NewService создаёт новый сервис пользователей.
func NewService(users repo.UserRepository) Service {
	return &service{users: users}
}

// AddUser регистрирует нового пользователя.
func (s *service) AddUser(ctx context.Context, details Details) (*domain.User, error) {
	user := domain.NewUser(details.Name, details.Email, details.ImageURL)

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения пользователя: %w", err)
	}
	return saved, nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя %s: %w", id, err)
	}
	return user, nil
}

// LoginWithOAuth возвращает пользователя, соответствующего OAuth-аккаунту.
// Существующие записи не изменяются.
func (s *service) LoginWithOAuth(ctx context.Context, identity OAuthIdentity) (*domain.User, error) {
	if identity.ID == "" {
		return nil, fmt.Errorf("идентификатор OAuth-аккаунта пуст")
	}

	user, err := s.users.FindByID(ctx, identity.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("ошибка поиска пользователя %s: %w", identity.ID, err)
	}

	if identity.Email != "" {
		user, err = s.users.FindByEmail(ctx, identity.Email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("ошибка поиска пользователя по email: %w", err)
		}
	}

	created := domain.NewUserWithID(identity.ID, identity.Login, identity.Email, identity.AvatarURL)
	saved, err := s.users.Save(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя %s: %w", identity.ID, err)
	}
	return saved, nil
}
