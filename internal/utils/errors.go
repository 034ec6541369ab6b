package utils

import "github.com/gofiber/fiber/v2"

// ApiError is the error shape every handler and service returns. The fiber
// error handler converts it into the error envelope; anything else becomes
// a 500.
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

func (e *ApiError) Error() string { return e.Message }

func NewApiError(status int, msg string) *ApiError {
	return &ApiError{StatusCode: status, Message: msg, Errors: []string{}}
}

func BadRequest(msg string) *ApiError   { return NewApiError(fiber.StatusBadRequest, msg) }
func Unauthorized(msg string) *ApiError { return NewApiError(fiber.StatusUnauthorized, msg) }
func Forbidden(msg string) *ApiError    { return NewApiError(fiber.StatusForbidden, msg) }
func NotFound(msg string) *ApiError     { return NewApiError(fiber.StatusNotFound, msg) }
func Internal(msg string) *ApiError     { return NewApiError(fiber.StatusInternalServerError, msg) }
