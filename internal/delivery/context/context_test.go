package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLoggerFallback(t *testing.T) {
	fallback := slog.New(slog.DiscardHandler)
	scoped := fallback.With(slog.String("request_id", "r1"))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Nil(t, GetLogger(context.Background()))

	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}

func TestRequestID(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetRequestIDFromContext(context.Background()))

	SetRequestID(c, "r1")
	assert.Equal(t, "r1", GetRequestID(c))
	assert.Equal(t, "r1", GetRequestIDFromContext(WithRequestID(context.Background(), "r1")))
}

func TestSessionIdentity(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetSessionIdentity(c)
	assert.False(t, ok)

	SetSessionIdentity(c, uuid.Nil)
	_, ok = GetSessionIdentity(c)
	assert.False(t, ok)

	id := uuid.New()
	SetSessionIdentity(c, id)
	got, ok := GetSessionIdentity(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
