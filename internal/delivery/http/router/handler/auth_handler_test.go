package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coachly/internal/delivery/http/validator"
	"coachly/internal/domain/entity"
	"coachly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *mockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *mockUserUsecase) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RefreshTokenOutput), args.Error(1)
}

func (m *mockUserUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	uc := &mockUserUsecase{}
	h := NewAuthHandler(uc, newDiscardLogger())

	body := `{
		"username": "jan_kowalski",
		"email": "jan@example.com",
		"password": "Secret123",
		"full_name": "Jan Kowalski",
		"phone_number": "+48 123 456 789",
		"role": "client"
	}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/register", body)

	registered := &entity.User{
		ID:           uuid.New(),
		Username:     "jan_kowalski",
		Email:        "jan@example.com",
		PasswordHash: "$2a$12$secret",
		FullName:     "Jan Kowalski",
		PhoneNumber:  "+48 123 456 789",
		Role:         entity.RoleClient,
		CreatedAt:    time.Now(),
	}
	uc.On("Register", mock.Anything, mock.MatchedBy(func(input *usecase.RegisterInput) bool {
		return input.Username == "jan_kowalski" && input.Role == "client"
	})).Return(&usecase.RegisterOutput{User: registered}, nil)

	err := h.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "jan_kowalski")
	// The credential digest must never cross the API boundary.
	assert.NotContains(t, rec.Body.String(), "$2a$12$secret")
	uc.AssertExpectations(t)
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	uc := &mockUserUsecase{}
	h := NewAuthHandler(uc, newDiscardLogger())

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/register", `{"username": 42}`)

	err := h.Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_FallsBackToUserAgent(t *testing.T) {
	uc := &mockUserUsecase{}
	h := NewAuthHandler(uc, newDiscardLogger())

	body := `{"email": "jan@example.com", "password": "Secret123"}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/login", body)
	c.Request().Header.Set("User-Agent", "CoachlyApp/2.1 (iPhone)")

	output := &usecase.LoginOutput{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		User:         &entity.User{ID: uuid.New(), Username: "jan_kowalski", Role: entity.RoleClient},
	}
	uc.On("Login", mock.Anything, mock.MatchedBy(func(input *usecase.LoginInput) bool {
		return input.DeviceInfo == "CoachlyApp/2.1 (iPhone)"
	})).Return(output, nil)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
	assert.Contains(t, rec.Body.String(), "refresh_token")
	uc.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	uc := &mockUserUsecase{}
	h := NewAuthHandler(uc, newDiscardLogger())

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/refresh", `{}`)

	err := h.RefreshToken(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	uc.AssertNotCalled(t, "RefreshToken", mock.Anything, mock.Anything)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	uc := &mockUserUsecase{}
	h := NewAuthHandler(uc, newDiscardLogger())

	body := `{"refresh_token": "old_refresh"}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/refresh", body)

	output := &usecase.RefreshTokenOutput{AccessToken: "new_access", RefreshToken: "new_refresh"}
	uc.On("RefreshToken", mock.Anything, mock.MatchedBy(func(input *usecase.RefreshTokenInput) bool {
		return input.RefreshToken == "old_refresh"
	})).Return(output, nil)

	err := h.RefreshToken(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new_access")
	assert.Contains(t, rec.Body.String(), "new_refresh")
}

func TestAuthHandler_Logout(t *testing.T) {
	uc := &mockUserUsecase{}
	h := NewAuthHandler(uc, newDiscardLogger())

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/auth/logout", `{"refresh_token": "some_refresh"}`)

	uc.On("Logout", mock.Anything, mock.MatchedBy(func(input *usecase.LogoutInput) bool {
		return input.RefreshToken == "some_refresh"
	})).Return(nil)

	err := h.Logout(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully logged out")
	uc.AssertExpectations(t)
}
