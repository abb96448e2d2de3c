package httpx

import (
	"net/http"

	"github.com/labstack/echo/v4"

	errs "usersvc/internal/errors"
)

// Envelope is the uniform response body shape: exactly one of Data and Error
// is set; the other is null.
type Envelope struct {
	Data  interface{}     `json:"data"`
	Error *errs.ErrorBody `json:"error"`
}

// JSON writes a success envelope around payload.
func JSON(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, Envelope{Data: payload})
}

// Error writes an error envelope. A status below 400 is floored at 400: a
// response carrying an error object must not look successful.
func Error(c echo.Context, status int, message, code string) error {
	if status < http.StatusBadRequest {
		status = http.StatusBadRequest
	}
	return c.JSON(status, Envelope{Error: &errs.ErrorBody{Message: message, Code: code}})
}
