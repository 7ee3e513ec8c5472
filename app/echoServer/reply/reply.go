// Package reply holds the response helpers shared by the controllers.
package reply

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"swiftride/util/apperr"
)

// Status maps a service error code to an HTTP status.
func Status(err error) int {
	switch apperr.Code(err) {
	case apperr.ErrBadInput:
		return http.StatusBadRequest
	case apperr.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON body. Uncoded errors become a 500 carrying the
// underlying message and are logged with the request id.
func Error(c echo.Context, log *slog.Logger, op string, err error) error {
	status := Status(err)
	if status != http.StatusInternalServerError {
		return c.JSON(status, echo.Map{"message": apperr.Message(err)})
	}
	if log != nil {
		log.Error(op+" failed",
			"err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"method", c.Request().Method,
		)
	}
	return c.JSON(status, echo.Map{"message": op + " failed", "error": err.Error()})
}

// ID parses the :id path parameter.
func ID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.ErrBadInput, "invalid id")
	}
	return id, nil
}

// Bind decodes the request body into dst and validates it.
func Bind(c echo.Context, v *validator.Validate, log *slog.Logger, dst any) error {
	if err := c.Bind(dst); err != nil {
		if log != nil {
			log.Warn("bind failed", "path", c.Path(), "err", err)
		}
		return apperr.New(apperr.ErrBadInput, "invalid body")
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(dst); err != nil {
		if log != nil {
			log.Warn("validation failed", "path", c.Path(), "err", err)
		}
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return apperr.New(apperr.ErrBadInput, "validation error: "+ve[0].Field()+" "+ve[0].Tag())
		}
		return apperr.New(apperr.ErrBadInput, "validation error")
	}
	return nil
}
