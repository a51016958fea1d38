package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ipscope/internal/delivery/http/response"
	domainerrors "ipscope/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.New(slog.DiscardHandler)).HandleHTTPError
	e.GET("/boom", func(echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestHandleHTTPError(t *testing.T) {
	t.Run("AppErrorCarriesItsStatusAndMessage", func(t *testing.T) {
		rec := serveWithError(t, domainerrors.ErrTokenInvalid.WrapMessage("token validation failed"))

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var msg response.MessageBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		assert.Equal(t, "Invalid or expired token.", msg.Message)
	})

	t.Run("UnknownErrorBecomesGeneric500", func(t *testing.T) {
		rec := serveWithError(t, errors.New("connection reset by peer"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var msg response.MessageBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		assert.Equal(t, "Internal server error.", msg.Message)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}
