package user

import (
	"github.com/google/uuid"
)

// User представляет доменную модель пользователя фитнес‑приложения.
//
// Пользователь создаётся один раз (при первом входе через OAuth или явной регистрации)
// и дальше не изменяется. Модель не зависит от транспорта и конкретного хранилища.
type User struct {
	ID       string // Уникальный идентификатор (UUID или id аккаунта у OAuth-провайдера)
	Name     string // Отображаемое имя
	Email    string // Email (уникален, если задан)
	ImageURL string // URL аватара
}

// NewUser служит фабрикой для создания нового пользователя со свежим идентификатором.
func NewUser(name, email, imageURL string) *User {
	return &User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		ImageURL: imageURL,
	}
}

// NewUserWithID создаёт пользователя с заранее известным идентификатором.
// Используется при первом входе через OAuth: id аккаунта провайдера становится id пользователя.
func NewUserWithID(id, name, email, imageURL string) *User {
	return &User{
		ID:       id,
		Name:     name,
		Email:    email,
		ImageURL: imageURL,
	}
}
