package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	errs "usersvc/internal/errors"
	"usersvc/internal/httpx"
)

// NewHTTPErrorHandler returns the central error handler. Every error escaping
// a handler is translated into an envelope body with the matching status;
// unexpected errors are logged and surfaced as a generic 500.
func NewHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *errs.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
		case errors.As(err, &echoErr):
			httpErr = errs.NewHTTPError(echoErr.Code, fmt.Sprintf("%v", echoErr.Message), "")
		default:
			httpErr = errs.MapErrorToHTTP(err)
		}

		if httpErr.StatusCode >= http.StatusInternalServerError {
			e.Logger.Error(err)
		}

		body := httpErr.ToErrorBody()
		if writeErr := c.JSON(httpErr.StatusCode, httpx.Envelope{Error: &body}); writeErr != nil {
			e.Logger.Error(writeErr)
		}
	}
}
