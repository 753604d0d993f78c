package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"fiturae/internal/config"
)

func newTestManager() *Manager {
	return NewManager(&config.SessionConfig{
		Name:   "test_session",
		Secret: "0123456789abcdef0123456789abcdef",
		MaxAge: 3600,
	})
}

// carry переносит cookie из ответа в новый запрос.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestPrincipal_EmptySession(t *testing.T) {
	m := newTestManager()

	_, err := m.Principal(httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, ErrNoPrincipal)
}

func TestSetPrincipal_RoundTrip(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, m.SetState(rec, req, "jti-1"))
	require.Equal(t, "jti-1", m.State(carry(rec)))

	rec2 := httptest.NewRecorder()
	require.NoError(t, m.SetPrincipal(rec2, carry(rec), &Principal{UserID: "42", Login: "octocat", AvatarURL: "a"}))

	next := carry(rec2)
	p, err := m.Principal(next)
	require.NoError(t, err)
	require.Equal(t, &Principal{UserID: "42", Login: "octocat", AvatarURL: "a"}, p)
	require.Empty(t, m.State(next))
}

func TestClear(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetPrincipal(rec, httptest.NewRequest(http.MethodGet, "/", nil), &Principal{UserID: "42"}))

	cleared := httptest.NewRecorder()
	require.NoError(t, m.Clear(cleared, carry(rec)))

	cookies := cleared.Result().Cookies()
	require.Len(t, cookies, 1)
	require.True(t, cookies[0].MaxAge < 0)
}

func TestPrincipal_ForeignCookieIgnored(t *testing.T) {
	m := newTestManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "garbage"})

	_, err := m.Principal(req)
	require.ErrorIs(t, err, ErrNoPrincipal)
}
