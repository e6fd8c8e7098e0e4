package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/account-messenger/internal/models"
)

type checkerFunc func(ctx context.Context, fn func(models.Users) error) error

func (f checkerFunc) View(ctx context.Context, fn func(models.Users) error) error { return f(ctx, fn) }

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	ok := checkerFunc(func(_ context.Context, fn func(models.Users) error) error { return fn(models.Users{}) })
	w := httptest.NewRecorder()
	New(logger, ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"ok"}`, w.Body.String())

	broken := checkerFunc(func(context.Context, func(models.Users) error) error { return errors.New("permission denied") })
	w = httptest.NewRecorder()
	New(logger, broken).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
