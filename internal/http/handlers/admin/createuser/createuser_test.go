package createuser

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-messenger/internal/models"
	"github.com/magabrotheeeer/account-messenger/internal/services/accounts"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateUser(ctx context.Context, username, password string, expiryDays int) (models.UserView, error) {
	args := m.Called(ctx, username, password, expiryDays)
	return args.Get(0).(models.UserView), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestCreateUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание",
			body: `{"username":"bob","password":"secret","expiryDays":30}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "bob", "secret", 30).Return(models.UserView{Username: "bob"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Account created successfully."}`,
		},
		{
			name: "нулевой срок допустим",
			body: `{"username":"bob","password":"secret","expiryDays":0}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "bob", "secret", 0).Return(models.UserView{Username: "bob"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Account created successfully."}`,
		},
		{
			name: "имя занято",
			body: `{"username":"admin","password":"x","expiryDays":1}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "admin", "x", 1).Return(models.UserView{}, accounts.ErrUserExists).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"success":false,"message":"Username already exists."}`,
		},
		{
			name: "ошибка хранилища",
			body: `{"username":"bob","password":"x","expiryDays":1}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "bob", "x", 1).Return(models.UserView{}, errors.New("disk")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"message":"storage error"}`,
		},
		{
			name:           "нет срока действия",
			body:           `{"username":"bob","password":"x"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"field ExpiryDays is a required field"}`,
		},
		{
			name:           "отрицательный срок",
			body:           `{"username":"bob","password":"x","expiryDays":-3}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"field ExpiryDays must be at least 0"}`,
		},
		{
			name:           "слишком большой срок",
			body:           `{"username":"bob","password":"x","expiryDays":4000000}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"field ExpiryDays must be at most 36500"}`,
		},
		{
			name: "срок отклонён сервисом",
			body: `{"username":"bob","password":"x","expiryDays":36500}`,
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, "bob", "x", 36500).Return(models.UserView{}, accounts.ErrInvalidExpiry).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"Expiry days out of range."}`,
		},
		{
			name:           "срок не число",
			body:           `{"username":"bob","password":"x","expiryDays":"ten"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			handler := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/create-user", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
