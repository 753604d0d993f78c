package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"fiturae/pkg/logger"
)

func newFakeGitHub(t *testing.T, userStatus int, userBody string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad_verification_code"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userStatus)
		_, _ = w.Write([]byte(userBody))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *GitHubProvider {
	return newGitHubProvider(&oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/login/oauth/authorize",
			TokenURL:  srv.URL + "/login/oauth/access_token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, srv.URL+"/user", logger.Nop())
}

func TestGitHubProvider_AuthCodeURL(t *testing.T) {
	srv := newFakeGitHub(t, http.StatusOK, `{}`)
	p := newTestProvider(srv)

	raw := p.AuthCodeURL("state-token")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "state-token", u.Query().Get("state"))
	require.Equal(t, "client", u.Query().Get("client_id"))
}

func TestGitHubProvider_Exchange(t *testing.T) {
	srv := newFakeGitHub(t, http.StatusOK, `{"id":583231,"login":"octocat","name":"The Octocat","email":"octo@example.com","avatar_url":"https://avatars/583231"}`)
	p := newTestProvider(srv)

	profile, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	require.Equal(t, &Profile{
		ID:        "583231",
		Login:     "octocat",
		Name:      "The Octocat",
		Email:     "octo@example.com",
		AvatarURL: "https://avatars/583231",
	}, profile)
}

func TestGitHubProvider_ExchangeRejectedCode(t *testing.T) {
	srv := newFakeGitHub(t, http.StatusOK, `{}`)
	p := newTestProvider(srv)

	_, err := p.Exchange(context.Background(), "bad-code")
	require.ErrorIs(t, err, ErrExchange)
}

func TestGitHubProvider_ProfileUnavailable(t *testing.T) {
	srv := newFakeGitHub(t, http.StatusUnauthorized, `{"message":"Bad credentials"}`)
	p := newTestProvider(srv)

	_, err := p.Exchange(context.Background(), "good-code")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrExchange)
}
