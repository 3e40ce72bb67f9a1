package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// The charting UI consumes raw JSON shapes with no response envelope:
// arrays for bar lists, plain objects for maps, and {"error": ...} with
// status 400 for malformed requests.

// JSON writes data as-is with status 200.
func JSON(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// ErrorResponse writes the flat error object the UI expects.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// BadRequestResponse writes a 400 with the flat error object.
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}

// ErrorHandler renders handler errors in the flat wire shape. AppError
// carries its own status; echo errors keep theirs; anything else is a 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "internal error"

	var appErr *AppError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		msg = appErr.Message
	case errors.As(err, &he):
		status = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	}
	_ = ErrorResponse(c, status, msg)
}

// ValidationErrorResponse reduces validation output to the flat error
// object, using the first message.
func ValidationErrorResponse(c echo.Context, verrs interface{}) error {
	if errs, ok := verrs.([]ValidationError); ok && len(errs) > 0 {
		return BadRequestResponse(c, errs[0].Message)
	}
	return BadRequestResponse(c, "invalid request")
}
