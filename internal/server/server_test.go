package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fiturae/internal/config"
	"fiturae/internal/events"
	"fiturae/internal/handler/response"
	workouthandler "fiturae/internal/handler/workout"
	"fiturae/internal/repository"
	"fiturae/pkg/oauth"
)

type fakeProvider struct {
	profile *oauth.Profile
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://github.example/login/oauth/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (*oauth.Profile, error) {
	if code != "good-code" {
		return nil, oauth.ErrExchange
	}
	return p.profile, nil
}

type recordingPublisher struct {
	events []events.WorkoutEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.WorkoutEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// client хранит cookie между запросами, как браузер.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return rec
}

func testConfig(requireSession bool) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Host: "localhost", Port: "0"},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		CORS: config.CORSConfig{
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:         time.Hour,
		},
		Session: config.SessionConfig{Name: "fiturae_session", Secret: "0123456789abcdef0123456789abcdef", MaxAge: 3600},
		Auth:    config.AuthConfig{RequireSession: requireSession},
		OAuth:   config.OAuthConfig{SuccessRedirect: "/home"},
		JWT:     config.JWTConfig{Secret: "jwt-secret", Issuer: "fiturae", StateTTL: time.Minute},
		AppEnv:  "test",
	}
}

func newTestClient(t *testing.T, requireSession bool) (*client, *recordingPublisher) {
	t.Helper()

	return newTestClientWithProfile(t, requireSession, &oauth.Profile{
		ID:        "583231",
		Login:     "octocat",
		AvatarURL: "https://avatars/583231",
	})
}

func newTestClientWithProfile(t *testing.T, requireSession bool, profile *oauth.Profile) (*client, *recordingPublisher) {
	t.Helper()

	publisher := &recordingPublisher{}
	provider := &fakeProvider{profile: profile}

	srv := NewServer(testConfig(requireSession), repository.NewMemoryStore(), publisher, WithOAuthProvider(provider))
	return &client{t: t, handler: srv.GetRouter(), cookies: make(map[string]*http.Cookie)}, publisher
}

// login проходит OAuth-вход и возвращает клиента с сессией.
func login(t *testing.T, c *client) {
	t.Helper()

	rec := c.do(http.MethodGet, "/oauth2/authorization/github", "")
	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	rec = c.do(http.MethodGet, "/login/oauth2/code/github?code=good-code&state="+url.QueryEscape(state), "")
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	require.Equal(t, "/home", rec.Header().Get("Location"))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestOAuthLoginAndMe(t *testing.T) {
	c, _ := newTestClient(t, true)

	rec := c.do(http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	login(t, c)

	rec = c.do(http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"583231","name":"octocat","imageUrl":"https://avatars/583231"}`, rec.Body.String())

	// Пользователь создан при первом входе с id аккаунта GitHub.
	rec = c.do(http.MethodGet, "/api/users/583231", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"583231","name":"octocat","imageUrl":"https://avatars/583231"}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOAuthLogin_LinksRegisteredUserByEmail(t *testing.T) {
	c, _ := newTestClientWithProfile(t, false, &oauth.Profile{
		ID:        "583231",
		Login:     "octocat",
		Email:     "octo@example.com",
		AvatarURL: "https://avatars/583231",
	})

	rec := c.do(http.MethodPost, "/api/users", `{"name":"Octo","email":"octo@example.com","imageUrl":"i"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	registeredID := decode[map[string]any](t, rec)["id"].(string)
	require.NotEqual(t, "583231", registeredID)

	login(t, c)

	// Вход привязан к уже зарегистрированному пользователю: id сессии это его id, а не id GitHub.
	rec = c.do(http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":"`+registeredID+`","name":"octocat","imageUrl":"https://avatars/583231"}`, rec.Body.String())

	// Второй пользователь с id GitHub не создан.
	rec = c.do(http.MethodGet, "/api/users/583231", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The user is unknown", rec.Body.String())

	rec = c.do(http.MethodGet, "/api/users/"+registeredID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "octo@example.com", decode[map[string]any](t, rec)["email"])
}

func TestOAuthCallback_RejectsForeignState(t *testing.T) {
	c, _ := newTestClient(t, true)

	rec := c.do(http.MethodGet, "/oauth2/authorization/github", "")
	require.Equal(t, http.StatusFound, rec.Code)

	// Чужой браузер без cookie с тем же state.
	other := &client{t: t, handler: c.handler, cookies: make(map[string]*http.Cookie)}
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)

	rec = other.do(http.MethodGet, "/login/oauth2/code/github?code=good-code&state="+url.QueryEscape(location.Query().Get("state")), "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodGet, "/login/oauth2/code/github?code=good-code&state=garbage", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOAuthCallback_RejectedCode(t *testing.T) {
	c, _ := newTestClient(t, true)

	rec := c.do(http.MethodGet, "/oauth2/authorization/github", "")
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)

	rec = c.do(http.MethodGet, "/login/oauth2/code/github?code=bad-code&state="+url.QueryEscape(location.Query().Get("state")), "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	c, _ := newTestClient(t, true)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/workouts/583231"},
		{http.MethodGet, "/api/workouts/details/w1"},
		{http.MethodPost, "/api/workouts"},
		{http.MethodPut, "/api/workouts/w1"},
		{http.MethodDelete, "/api/workouts/w1"},
		{http.MethodGet, "/api/users/583231"},
		{http.MethodPost, "/api/users"},
	} {
		rec := c.do(tc.method, tc.path, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		body := decode[response.ErrorEnvelope](t, rec)
		require.Equal(t, response.CodeUnauthorized, body.Error.Code)
	}
}

func TestWorkoutLifecycle(t *testing.T) {
	c, publisher := newTestClient(t, true)
	login(t, c)

	// Создание
	rec := c.do(http.MethodPost, "/api/workouts",
		`{"userId":"583231","name":"Test Workout","day":"friday","description":"d","plan":[{"name":"squat","sets":5}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[workouthandler.Response](t, rec)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "583231", created.UserID)
	require.Equal(t, "FRIDAY", created.Day)
	require.Equal(t, "squat", created.Plan[0]["name"])

	// Дата вместо дня недели, план не передан
	rec = c.do(http.MethodPost, "/api/workouts", `{"userId":"583231","name":"Second","day":"2023-12-15"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decode[map[string]any](t, rec)
	require.Equal(t, "FRIDAY", second["day"])
	require.Equal(t, []any{}, second["plan"])

	// Список владельца в порядке создания
	rec = c.do(http.MethodGet, "/api/workouts/583231", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]workouthandler.Response](t, rec)
	require.Len(t, list, 2)
	require.Equal(t, created.ID, list[0].ID)

	// Детали
	rec = c.do(http.MethodGet, "/api/workouts/details/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, created, decode[workouthandler.Response](t, rec))

	// Полная замена
	rec = c.do(http.MethodPut, "/api/workouts/"+created.ID, `{"name":"Upper","day":"MONDAY","description":"","plan":[]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[workouthandler.Response](t, rec)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "583231", updated.UserID)
	require.Equal(t, "Upper", updated.Name)
	require.Equal(t, "MONDAY", updated.Day)
	require.Empty(t, updated.Description)
	require.Empty(t, updated.Plan)

	// Удаление идемпотентно
	rec = c.do(http.MethodDelete, "/api/workouts/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodDelete, "/api/workouts/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/api/workouts/583231", "")
	list = decode[[]workouthandler.Response](t, rec)
	require.Len(t, list, 1)

	types := make([]string, 0, len(publisher.events))
	for _, e := range publisher.events {
		types = append(types, e.Type)
	}
	require.Equal(t, []string{
		events.WorkoutCreated,
		events.WorkoutCreated,
		events.WorkoutUpdated,
		events.WorkoutDeleted,
	}, types)
}

func TestWorkoutNotFoundResponses(t *testing.T) {
	c, _ := newTestClient(t, true)
	login(t, c)

	rec := c.do(http.MethodPost, "/api/workouts", `{"userId":"bogus","name":"x","day":"MONDAY","description":"","plan":[]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The user is unknown", rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	rec = c.do(http.MethodGet, "/api/workouts/bogus", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The user is unknown", rec.Body.String())

	rec = c.do(http.MethodGet, "/api/workouts/details/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The workout is unknown", rec.Body.String())

	rec = c.do(http.MethodPut, "/api/workouts/missing", `{"name":"x","day":"MONDAY","description":"","plan":[]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The workout is unknown", rec.Body.String())

	rec = c.do(http.MethodGet, "/api/users/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "The user is unknown", rec.Body.String())
}

func TestWorkoutBadRequests(t *testing.T) {
	c, _ := newTestClient(t, true)
	login(t, c)

	for _, body := range []string{
		`not json`,
		`{"name":"x","day":"MONDAY"}`,
		`{"userId":"583231","day":"MONDAY"}`,
		`{"userId":"583231","name":"x","day":"FUNDAY"}`,
	} {
		rec := c.do(http.MethodPost, "/api/workouts", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, response.CodeInvalidRequest, decode[response.ErrorEnvelope](t, rec).Error.Code)
	}
}

func TestUsersWithoutSessionRequirement(t *testing.T) {
	c, _ := newTestClient(t, false)

	rec := c.do(http.MethodPost, "/api/users", `{"name":"User1","email":"e@example.com","imageUrl":"i"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decode[map[string]any](t, rec)
	require.NotEmpty(t, user["id"])
	require.Equal(t, "e@example.com", user["email"])

	rec = c.do(http.MethodPost, "/api/users", `{"name":"Other","email":"e@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, response.CodeEmailAlreadyExists, decode[response.ErrorEnvelope](t, rec).Error.Code)

	id := user["id"].(string)
	rec = c.do(http.MethodPost, "/api/workouts", `{"userId":"`+id+`","name":"Test Workout","day":"FRIDAY","description":"d","plan":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, id, decode[workouthandler.Response](t, rec).UserID)
}

func TestServiceEndpoints(t *testing.T) {
	c, _ := newTestClient(t, true)

	rec := c.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/health/db", "")
	require.Equal(t, http.StatusOK, rec.Code)

	c.do(http.MethodGet, "/api/workouts/anyone", "")
	rec = c.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "fiturae_http_requests_total")
}
