package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "fiturae/internal/domain/user"
	repo "fiturae/internal/repository/interfaces"
)

// UserRepository хранит пользователей в памяти процесса.
// Используется для локальной разработки (STORAGE_DRIVER=memory) и в тестах.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает пустой репозиторий пользователей.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// FindByID возвращает копию пользователя по идентификатору.
func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

// FindByEmail возвращает копию пользователя по email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, repo.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

// Save сохраняет пользователя, проверяя уникальность непустого email.
func (r *UserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *user
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	if saved.Email != "" {
		for id, u := range r.users {
			if id != saved.ID && u.Email == saved.Email {
				return nil, repo.ErrEmailExists
			}
		}
	}

	r.users[saved.ID] = saved
	out := saved
	return &out, nil
}
