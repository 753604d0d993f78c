// Package session хранит OAuth-принципала в подписанной cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"fiturae/internal/config"
)

const (
	keyUserID    = "userId"
	keyLogin     = "login"
	keyAvatarURL = "avatarUrl"
	keyStateID   = "oauthState"
)

// ErrNoPrincipal возвращается, когда в сессии нет вошедшего пользователя.
var ErrNoPrincipal = errors.New("no principal in session")

// Principal: атрибуты пользователя, полученные от OAuth-провайдера при входе.
type Principal struct {
	UserID    string
	Login     string
	AvatarURL string
}

// Manager читает и записывает сессию браузера.
type Manager struct {
	store sessions.Store
	name  string
}

// NewManager создаёт менеджер поверх cookie-хранилища gorilla/sessions.
func NewManager(cfg *config.SessionConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// Срок жизни подписи cookie совпадает со сроком жизни самой cookie
	store.MaxAge(cfg.MaxAge)
	return &Manager{store: store, name: cfg.Name}
}

// get возвращает сессию запроса. Повреждённая или чужая cookie даёт новую пустую сессию.
func (m *Manager) get(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		sess, _ = m.store.New(r, m.name)
		sess.IsNew = true
	}
	return sess
}

// Principal возвращает вошедшего пользователя или ErrNoPrincipal.
func (m *Manager) Principal(r *http.Request) (*Principal, error) {
	sess := m.get(r)

	userID, _ := sess.Values[keyUserID].(string)
	if userID == "" {
		return nil, ErrNoPrincipal
	}
	login, _ := sess.Values[keyLogin].(string)
	avatar, _ := sess.Values[keyAvatarURL].(string)

	return &Principal{UserID: userID, Login: login, AvatarURL: avatar}, nil
}

// SetPrincipal сохраняет пользователя в сессии и удаляет одноразовый state.
func (m *Manager) SetPrincipal(w http.ResponseWriter, r *http.Request, p *Principal) error {
	sess := m.get(r)
	sess.Values[keyUserID] = p.UserID
	sess.Values[keyLogin] = p.Login
	sess.Values[keyAvatarURL] = p.AvatarURL
	delete(sess.Values, keyStateID)

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

// SetState запоминает идентификатор выданного OAuth state-токена.
func (m *Manager) SetState(w http.ResponseWriter, r *http.Request, stateID string) error {
	sess := m.get(r)
	sess.Values[keyStateID] = stateID

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}
	return nil
}

// State возвращает идентификатор ожидаемого OAuth state-токена.
func (m *Manager) State(r *http.Request) string {
	stateID, _ := m.get(r).Values[keyStateID].(string)
	return stateID
}

// Clear удаляет сессию у клиента.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := m.get(r)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}
