package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourorg/vidtube/services/content-service/internal/middleware"
	"github.com/yourorg/vidtube/services/content-service/internal/services"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

type LikeHandler struct {
	svc *services.LikeService
}

func NewLikeHandler(svc *services.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// POST /api/v1/likes/tweet/:tweetId
func (h *LikeHandler) ToggleTweetLike(c *fiber.Ctx) error {
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized("user not found in request")
	}
	tweetID, err := primitive.ObjectIDFromHex(c.Params("tweetId"))
	if err != nil {
		return utils.BadRequest("invalid tweet id format")
	}
	liked, err := h.svc.ToggleTweetLike(c.Context(), tweetID, uid)
	if err != nil {
		return err
	}
	msg := "tweet unliked successfully"
	if liked {
		msg = "tweet liked successfully"
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"liked": liked}, msg)
}
