package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"fiturae/internal/config"
)

func newTestService(cfg *config.JWTConfig, now time.Time) *service {
	return &service{cfg: cfg, now: func() time.Time { return now }}
}

func TestStateToken_RoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "secret", Issuer: "fiturae", StateTTL: 10 * time.Minute}
	now := time.Now()
	svc := newTestService(cfg, now)

	token, jti, err := svc.GenerateStateToken("github")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := svc.ParseStateToken(token)
	require.NoError(t, err)
	require.Equal(t, jti, claims.ID)
	require.Equal(t, "github", claims.Provider)
	require.Equal(t, "fiturae", claims.Issuer)
}

func TestStateToken_Expired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "secret", Issuer: "fiturae", StateTTL: time.Minute}
	issued := time.Now().Add(-time.Hour)

	token, _, err := newTestService(cfg, issued).GenerateStateToken("github")
	require.NoError(t, err)

	_, err = newTestService(cfg, time.Now()).ParseStateToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestStateToken_WrongSecret(t *testing.T) {
	now := time.Now()
	token, _, err := newTestService(&config.JWTConfig{Secret: "a", StateTTL: time.Minute}, now).GenerateStateToken("github")
	require.NoError(t, err)

	_, err = newTestService(&config.JWTConfig{Secret: "b", StateTTL: time.Minute}, now).ParseStateToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestStateToken_WrongIssuer(t *testing.T) {
	now := time.Now()
	token, _, err := newTestService(&config.JWTConfig{Secret: "s", Issuer: "other", StateTTL: time.Minute}, now).GenerateStateToken("github")
	require.NoError(t, err)

	_, err = newTestService(&config.JWTConfig{Secret: "s", Issuer: "fiturae", StateTTL: time.Minute}, now).ParseStateToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestStateToken_EmptySecret(t *testing.T) {
	svc := NewService(&config.JWTConfig{StateTTL: time.Minute})

	_, _, err := svc.GenerateStateToken("github")
	require.ErrorIs(t, err, ErrEmptySecret)

	_, err = svc.ParseStateToken("anything")
	require.ErrorIs(t, err, ErrEmptySecret)
}
