package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jacomprei/config"
	"jacomprei/internal/delivery/http/validator"
	"jacomprei/internal/infra/auth"
	"jacomprei/internal/infra/persistence/memory"
	"jacomprei/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserHandler(t *testing.T) *UserHandler {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: time.Hour},
	}
	cfg.SecretKey.Access = "integration-test-secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := impl.NewUserService(impl.UserServiceParams{
		UserRepo:     memory.NewUserRepository(memory.NewStore()),
		Hasher:       auth.NewScryptHasher(),
		TokenService: tokenService,
		Logger:       logger,
	})

	return NewUserHandler(uc, logger)
}

func TestUserHandler_Register_Integration(t *testing.T) {
	handler := newTestUserHandler(t)

	e := echo.New()
	e.Validator = validator.New()

	body := `{
		"username": "maria",
		"email": "maria@example.com",
		"name": "Maria Silva",
		"password": "super-secret-pw",
		"role": "CONSUMER"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"success":true`)
	assert.Contains(t, responseBody, `"token"`)
	assert.Contains(t, responseBody, `"maria"`)
	assert.NotContains(t, responseBody, "super-secret-pw")
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	handler := newTestUserHandler(t)

	e := echo.New()
	e.Validator = validator.New()

	// Missing password and malformed email.
	body := `{"username": "x", "email": "not-an-email", "name": "X", "role": "CONSUMER"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestUserHandler_LoginWrongPassword_Integration(t *testing.T) {
	handler := newTestUserHandler(t)

	e := echo.New()
	e.Validator = validator.New()

	register := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{
		"username": "joao",
		"email": "joao@example.com",
		"name": "João",
		"password": "super-secret-pw",
		"role": "MERCHANT"
	}`))
	register.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	require.NoError(t, handler.Register(e.NewContext(register, httptest.NewRecorder())))

	login := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(
		`{"username": "joao", "password": "wrong-password"}`))
	login.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Login(e.NewContext(login, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}
