package interfaces

import (
	"context"
	"errors"

	domain "fiturae/internal/domain/user"
)

// ErrNotFound возвращается, когда сущность не найдена в хранилище.
var ErrNotFound = errors.New("entity not found")

// ErrEmailExists возвращается, когда пользователь с таким email уже существует.
var ErrEmailExists = errors.New("email already exists")

// UserRepository определяет контракт каталога пользователей на уровне хранилища.
//
// Интерфейс оперирует доменной моделью User и не раскрывает деталей реализации (GORM, Mongo и т.п.).
type UserRepository interface {
	// FindByID возвращает пользователя по идентификатору.
	// Возвращает (nil, ErrNotFound), если пользователь не найден.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail возвращает пользователя по email.
	// Возвращает (nil, ErrNotFound), если пользователь не найден.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Save сохраняет пользователя. Если идентификатор пуст, назначает новый.
	// Возвращает ErrEmailExists, если email уже занят другим пользователем.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
