package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/insighthq/customer-intelligence/internal/core/domain"
)

// errorEnvelope is the canonical error shape for all API errors. It mirrors
// the success envelope with success=false and a stable machine-readable code.
type errorEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps typed domain errors to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the {success, error, code, timestamp} envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, errorEnvelope{
			Success:   false,
			Error:     msg,
			Code:      code,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Code, ve.Error()
	}

	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, domain.CodeNotFound, "customer not found"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, domain.CodeDuplicate, err.Error()
	}

	// Echo's own errors (bind failures, 404/405 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, statusToCode(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.CodeInternal, "internal server error"
}

func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.CodeValidation
	case http.StatusNotFound:
		return domain.CodeNotFound
	case http.StatusMethodNotAllowed:
		return domain.CodeMethodNotAllowed
	case http.StatusConflict:
		return domain.CodeDuplicate
	default:
		return domain.CodeInternal
	}
}
