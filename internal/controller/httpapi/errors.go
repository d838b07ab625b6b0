package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mingmingss/feedback-management/internal/apperr"
)

// newHTTPErrorHandler maps the service error taxonomy onto HTTP statuses:
// InvalidInput and InvalidRange reject with 400 before any store
// mutation, NotFound with 404, DuplicateOccurrence with 409. Everything
// unrecognized is a 500 and gets logged.
func newHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"

		var httpErr *echo.HTTPError
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		case errors.As(err, &validationErrs):
			code = http.StatusBadRequest
			fields := make(map[string]string, len(validationErrs))
			for _, fe := range validationErrs {
				fields[fe.Field()] = fe.Tag()
			}
			_ = ctx.JSON(code, echo.Map{"error": "validation failed", "fields": fields})
			return
		case errors.Is(err, apperr.ErrInvalidInput), errors.Is(err, apperr.ErrInvalidRange):
			code = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, apperr.ErrNotFound):
			code = http.StatusNotFound
			message = err.Error()
		case errors.Is(err, apperr.ErrDuplicateOccurrence):
			code = http.StatusConflict
			message = err.Error()
		default:
			logger.Error("Unhandled request error",
				zap.String("path", ctx.Request().URL.Path),
				zap.Error(err),
			)
		}

		if err := ctx.JSON(code, echo.Map{"error": message}); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
