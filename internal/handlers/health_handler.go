package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

// GET /api/v1/healthcheck
func Healthcheck(c *fiber.Ctx) error {
	return utils.JSONSuccess(c, fiber.StatusOK, "ok", "service is healthy")
}
