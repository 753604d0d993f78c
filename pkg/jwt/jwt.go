package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fiturae/internal/config"
)

const stateAudience = "oauth-state"

// ErrEmptySecret возвращается при попытке подписать токен без секрета.
var ErrEmptySecret = errors.New("jwt secret is empty")

// StateClaims описывает пейлоад OAuth state-токена.
// Provider фиксирует, для какого провайдера был начат вход.
type StateClaims struct {
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// Service инкапсулирует выпуск и проверку подписанных state-токенов,
// которые передаются OAuth-провайдеру и возвращаются в callback.
type Service interface {
	GenerateStateToken(provider string) (string, string, error) // token, jti
	ParseStateToken(tokenString string) (*StateClaims, error)
}

type service struct {
	cfg *config.JWTConfig
	now func() time.Time
}

// NewService создаёт JWT-сервис на основе конфигурации.
func NewService(cfg *config.JWTConfig) Service {
	return &service{cfg: cfg, now: time.Now}
}

// GenerateStateToken выпускает короткоживущий state-токен и возвращает его jti.
// jti сохраняется в сессии браузера и сверяется в callback.
func (s *service) GenerateStateToken(provider string) (string, string, error) {
	if s.cfg.Secret == "" {
		return "", "", ErrEmptySecret
	}

	now := s.now().UTC()
	jti := uuid.NewString()

	claims := &StateClaims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{stateAudience},
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.StateTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseStateToken парсит и валидирует state-токен.
func (s *service) ParseStateToken(tokenString string) (*StateClaims, error) {
	if s.cfg.Secret == "" {
		return nil, ErrEmptySecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(stateAudience),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &StateClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*StateClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.ID == "" {
		return nil, jwt.ErrTokenInvalidId
	}

	return claims, nil
}
