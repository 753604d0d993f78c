package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "fiturae/internal/domain/user"
	"fiturae/internal/handler/middleware"
	"fiturae/internal/handler/response"
	"fiturae/internal/observability"
	"fiturae/internal/session"
	useruc "fiturae/internal/usecase/user"
	jwtsvc "fiturae/pkg/jwt"
	"fiturae/pkg/oauth"
)

// OAuthLogin: часть каталога пользователей, нужная для входа.
type OAuthLogin interface {
	LoginWithOAuth(ctx context.Context, identity useruc.OAuthIdentity) (*domain.User, error)
}

// Handler обрабатывает вход через GitHub и текущую сессию.
type Handler struct {
	users           OAuthLogin
	provider        oauth.Provider
	states          jwtsvc.Service
	sessions        *session.Manager
	successRedirect string
}

// NewHandler создаёт новый AuthHandler.
func NewHandler(users OAuthLogin, provider oauth.Provider, states jwtsvc.Service, sessions *session.Manager, successRedirect string) *Handler {
	return &Handler{
		users:           users,
		provider:        provider,
		states:          states,
		sessions:        sessions,
		successRedirect: successRedirect,
	}
}

// Login перенаправляет браузер на страницу авторизации GitHub.
//
// @Summary  Начать вход через GitHub
// @Tags     auth
// @Success  302
// @Router   /oauth2/authorization/github [get]
func (h *Handler) Login(c *gin.Context) {
	state, stateID, err := h.states.GenerateStateToken(oauth.ProviderGitHub)
	if err != nil {
		log.Printf("error generating oauth state: err=%v", err)
		response.Internal(c)
		return
	}

	if err := h.sessions.SetState(c.Writer, c.Request, stateID); err != nil {
		log.Printf("error saving oauth state: err=%v", err)
		response.Internal(c)
		return
	}

	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback завершает вход: проверяет state, получает профиль,
// находит или создаёт пользователя и сохраняет его в сессии.
//
// @Summary  OAuth callback GitHub
// @Tags     auth
// @Param    code   query  string  true  "Код авторизации"
// @Param    state  query  string  true  "State-токен"
// @Success  302
// @Failure  401  {object}  response.ErrorEnvelope
// @Router   /login/oauth2/code/github [get]
func (h *Handler) Callback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		log.Printf("oauth provider returned error: error=%s description=%q", providerErr, c.Query("error_description"))
		observability.RecordOAuthLogin("denied")
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Вход отклонён провайдером", providerErr)
		return
	}

	claims, err := h.states.ParseStateToken(c.Query("state"))
	if err != nil || claims.ID != h.sessions.State(c.Request) || claims.Provider != oauth.ProviderGitHub {
		log.Printf("invalid oauth state: err=%v", err)
		observability.RecordOAuthLogin("invalid_state")
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Недействительный state", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		observability.RecordOAuthLogin("invalid_request")
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Отсутствует код авторизации", nil)
		return
	}

	profile, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		observability.RecordOAuthLogin("exchange_failed")
		if errors.Is(err, oauth.ErrExchange) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Код авторизации отклонён", nil)
			return
		}
		log.Printf("error loading oauth profile: err=%v", err)
		response.Internal(c)
		return
	}

	user, err := h.users.LoginWithOAuth(c.Request.Context(), useruc.OAuthIdentity{
		ID:        profile.ID,
		Login:     profile.Login,
		Email:     profile.Email,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		log.Printf("error in LoginWithOAuth: provider_id=%s err=%v", profile.ID, err)
		observability.RecordOAuthLogin("error")
		response.Internal(c)
		return
	}

	principal := &session.Principal{
		UserID:    user.ID,
		Login:     profile.Login,
		AvatarURL: profile.AvatarURL,
	}
	if err := h.sessions.SetPrincipal(c.Writer, c.Request, principal); err != nil {
		log.Printf("error saving session: user_id=%s err=%v", user.ID, err)
		observability.RecordOAuthLogin("error")
		response.Internal(c)
		return
	}

	log.Printf("user logged in: user_id=%s login=%s", user.ID, profile.Login)
	observability.RecordOAuthLogin("ok")
	c.Redirect(http.StatusFound, h.successRedirect)
}

// Me возвращает пользователя текущей сессии.
//
// @Summary  Текущий пользователь
// @Tags     auth
// @Produce  json
// @Success  200  {object}  MeResponse
// @Failure  401  {object}  response.ErrorEnvelope
// @Router   /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Требуется вход через GitHub", nil)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:       principal.UserID,
		Name:     principal.Login,
		ImageURL: principal.AvatarURL,
	})
}

// Logout удаляет сессию.
//
// @Summary  Выйти
// @Tags     auth
// @Produce  json
// @Success  200  {object}  LogoutResponse
// @Router   /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		log.Printf("error clearing session: err=%v", err)
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, LogoutResponse{Status: "ok"})
}
