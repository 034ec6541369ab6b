package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ApiResponse is the uniform success envelope returned by every endpoint.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func JSONSuccess(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(ApiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	})
}

// ErrorHandler is the process-wide error boundary: every error escaping a
// handler lands here and is converted into the error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			apiErr = NewApiError(fiberErr.Code, fiberErr.Message)
		} else {
			apiErr = Internal("internal server error")
		}
	}
	return c.Status(apiErr.StatusCode).JSON(fiber.Map{
		"statusCode": apiErr.StatusCode,
		"message":    apiErr.Message,
		"success":    false,
		"errors":     apiErr.Errors,
	})
}
