// Package oauth реализует вход через GitHub по протоколу OAuth2.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"fiturae/internal/config"
	"fiturae/pkg/logger"
)

// ProviderGitHub: имя провайдера в state-токене и логах.
const ProviderGitHub = "github"

// ErrExchange возвращается, когда провайдер отклонил код авторизации.
var ErrExchange = errors.New("oauth code exchange failed")

// Profile: атрибуты пользователя GitHub, нужные приложению.
type Profile struct {
	ID        string
	Login     string
	Name      string
	Email     string
	AvatarURL string
}

// Provider описывает OAuth-провайдера: ссылку на авторизацию и обмен кода на профиль.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// GitHubProvider реализует Provider для GitHub.
type GitHubProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
	log         logger.Logger
}

var _ Provider = (*GitHubProvider)(nil)

// NewGitHubProvider создаёт провайдера по конфигурации приложения.
func NewGitHubProvider(cfg *config.OAuthConfig, log logger.Logger) *GitHubProvider {
	return newGitHubProvider(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     github.Endpoint,
		Scopes:       []string{"read:user", "user:email"},
	}, cfg.UserInfoURL, log)
}

func newGitHubProvider(oauthCfg *oauth2.Config, userInfoURL string, log logger.Logger) *GitHubProvider {
	return &GitHubProvider{oauth: oauthCfg, userInfoURL: userInfoURL, log: log}
}

// AuthCodeURL возвращает адрес страницы авторизации GitHub.
func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// githubUser: ответ GET /user.
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Exchange меняет код авторизации на токен и загружает профиль пользователя.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		p.log.Error("ошибка обмена кода авторизации", map[string]any{"provider": ProviderGitHub, "err": err})
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса профиля: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса профиля: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("профиль недоступен: status=%d body=%q", resp.StatusCode, body)
	}

	var u githubUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("ошибка декодирования профиля: %w", err)
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("профиль без идентификатора")
	}

	p.log.Info("профиль получен", map[string]any{"provider": ProviderGitHub, "login": u.Login})

	return &Profile{
		ID:        strconv.FormatInt(u.ID, 10),
		Login:     u.Login,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}, nil
}
