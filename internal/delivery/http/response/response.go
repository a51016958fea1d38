// Package response defines the JSON wire shapes shared by all handlers.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MessageBody is the error payload: a single human-readable message.
// Authentication and validation failures both use it, so the shape never
// reveals which kind of failure occurred beyond the status code.
type MessageBody struct {
	Message string `json:"message"`
}

// Message writes a {"message": ...} body with the given status.
func Message(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, MessageBody{Message: message})
}

// Unauthorized 401 error.
func Unauthorized(c echo.Context, message string) error {
	return Message(c, http.StatusUnauthorized, message)
}

// UnprocessableEntity 422 error.
func UnprocessableEntity(c echo.Context, message string) error {
	return Message(c, http.StatusUnprocessableEntity, message)
}

// InternalServerError 500 error.
func InternalServerError(c echo.Context, message string) error {
	return Message(c, http.StatusInternalServerError, message)
}
