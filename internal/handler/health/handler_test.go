package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/health/db", h.HealthDB)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := serve(t, NewHandler(nil, "", "development"), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body.Status)
}

func TestHealthDB_OK(t *testing.T) {
	store := pingerFunc(func(context.Context) error { return nil })

	rec, body := serve(t, NewHandler(store, "memory", "development"), "/health/db")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "memory", body.Driver)
}

func TestHealthDB_Unavailable(t *testing.T) {
	store := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	rec, body := serve(t, NewHandler(store, "postgres", "development"), "/health/db")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, body.Message, "connection refused")

	rec, body = serve(t, NewHandler(store, "postgres", "production"), "/health/db")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotContains(t, body.Message, "connection refused")
}

func TestHealthDB_NoStore(t *testing.T) {
	rec, _ := serve(t, NewHandler(nil, "", "development"), "/health/db")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
