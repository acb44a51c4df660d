package register

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"react-golang/internal/service/auth"
	"react-golang/internal/storage"
)

type MockUserCreator struct {
	mock.Mock
}

func (m *MockUserCreator) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func TestRegister_Success(t *testing.T) {
	creator := new(MockUserCreator)
	creator.On("Register", mock.Anything, "maija", "salasana1").Return(nil)

	handler := Register(slog.Default(), creator)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username": "maija", "password": "salasana1"}`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "created")
	creator.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	creator := new(MockUserCreator)
	creator.On("Register", mock.Anything, "maija", "salasana1").
		Return(storage.ErrDuplicateUsername)

	handler := Register(slog.Default(), creator)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username": "maija", "password": "salasana1"}`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "already taken")
}

func TestRegister_WeakPassword(t *testing.T) {
	creator := new(MockUserCreator)
	creator.On("Register", mock.Anything, "maija", "123").Return(auth.ErrWeakPassword)

	handler := Register(slog.Default(), creator)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username": "maija", "password": "123"}`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegister_MissingUsername(t *testing.T) {
	creator := new(MockUserCreator)
	handler := Register(slog.Default(), creator)

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"password": "salasana1"}`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	creator.AssertNotCalled(t, "Register")
}
