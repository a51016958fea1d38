package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ipscope/config"
	"ipscope/internal/delivery/http/middleware"
	"ipscope/internal/delivery/http/response"
	"ipscope/internal/delivery/http/router"
	"ipscope/internal/delivery/http/router/handler"
	"ipscope/internal/delivery/http/validator"
	"ipscope/internal/domain/entity"
	"ipscope/internal/domain/repository"
	"ipscope/internal/infra/auth"
	"ipscope/internal/usecase"
	"ipscope/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepo struct {
	users map[string]*entity.User
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user

	return nil
}

// newTestServer builds the full delivery stack over an in-memory user
// store seeded with admin@example.com / password123.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	repo := &memoryUserRepo{users: map[string]*entity.User{
		"admin@example.com": {
			ID:           uuid.New(),
			Name:         "Admin",
			Email:        "admin@example.com",
			PasswordHash: hash,
		},
	}}

	cfg := &config.Config{}
	cfg.Token.Secret = "test-secret"
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	uc := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:     repo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(uc, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc),
	}).RegisterRoutes(e)

	return e
}

func postLogin(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		e := newTestServer(t)

		rec := postLogin(e, `{"email":"admin@example.com","password":"password123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var output usecase.LoginOutput
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &output))

		assert.NotEmpty(t, output.Token)
		assert.Equal(t, "admin@example.com", output.User.Email)
		assert.Equal(t, "Admin", output.User.Name)
		assert.NotEqual(t, uuid.Nil, output.User.ID)
	})

	t.Run("MissingFieldsReturn422", func(t *testing.T) {
		e := newTestServer(t)

		for _, body := range []string{
			`{"email":"","password":"x"}`,
			`{"email":"a@b.com","password":""}`,
			`{}`,
		} {
			rec := postLogin(e, body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "body: %s", body)

			var msg response.MessageBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
			assert.Equal(t, "Email and password are required.", msg.Message)
		}
	})

	t.Run("UnknownEmailAndWrongPasswordAreIndistinguishable", func(t *testing.T) {
		e := newTestServer(t)

		unknown := postLogin(e, `{"email":"nobody@example.com","password":"password123"}`)
		wrong := postLogin(e, `{"email":"admin@example.com","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())
	})
}

func TestMe(t *testing.T) {
	t.Run("WithValidToken", func(t *testing.T) {
		e := newTestServer(t)

		login := postLogin(e, `{"email":"admin@example.com","password":"password123"}`)
		require.Equal(t, http.StatusOK, login.Code)

		var output usecase.LoginOutput
		require.NoError(t, json.Unmarshal(login.Body.Bytes(), &output))

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+output.Token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			User entity.Profile `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "admin@example.com", body.User.Email)
	})

	t.Run("WithoutToken", func(t *testing.T) {
		e := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WithGarbageToken", func(t *testing.T) {
		e := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var msg response.MessageBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		assert.Equal(t, "Invalid or expired token.", msg.Message)
	})
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
