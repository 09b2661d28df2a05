package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/geocommerce/geopop/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Error     string `json:"error"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Error:     message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, msg)
}

// statusFor maps a domain error kind to an HTTP status. A raster in the wrong
// CRS means the query cannot be served, so it is reported like bad input.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInput, domain.KindConfiguration:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError converts a domain error into a JSON error response.
func respondError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	if status >= 500 || kind == domain.KindConfiguration {
		LoggerFromCtx(c.UserContext()).Error("population query failed",
			"kind", kind.String(), "error", err)
	}
	return newError(c, status, err.Error())
}

// ErrorHandler renders errors that escape handlers (404, timeouts, panics) as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	return newError(c, status, err.Error())
}
