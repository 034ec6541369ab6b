package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourorg/vidtube/services/content-service/internal/middleware"
	"github.com/yourorg/vidtube/services/content-service/internal/services"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

type TweetHandler struct {
	svc *services.TweetService
}

func NewTweetHandler(svc *services.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

type tweetBody struct {
	Content string `json:"content"`
}

// POST /api/v1/tweets
func (h *TweetHandler) Create(c *fiber.Ctx) error {
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized("user not found in request")
	}
	var body tweetBody
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest("invalid request body")
	}
	tweet, err := h.svc.Create(c.Context(), uid, body.Content)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, tweet, "tweet created successfully")
}

// GET /api/v1/tweets/user/:userId
func (h *TweetHandler) GetUserTweets(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return utils.BadRequest("invalid user id format")
	}
	// viewer is optional; isLiked stays false for anonymous requests
	viewer, _ := middleware.CurrentUser(c)
	tweets, err := h.svc.GetUserTweets(c.Context(), userID, viewer)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, tweets, "user tweets retrieved successfully")
}

// PATCH /api/v1/tweets/:tweetId
func (h *TweetHandler) Update(c *fiber.Ctx) error {
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized("user not found in request")
	}
	tweetID, err := primitive.ObjectIDFromHex(c.Params("tweetId"))
	if err != nil {
		return utils.BadRequest("invalid tweet id format")
	}
	var body tweetBody
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest("invalid request body")
	}
	tweet, err := h.svc.Update(c.Context(), tweetID, uid, body.Content)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, tweet, "tweet updated successfully")
}

// DELETE /api/v1/tweets/:tweetId
func (h *TweetHandler) Delete(c *fiber.Ctx) error {
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized("user not found in request")
	}
	tweetID, err := primitive.ObjectIDFromHex(c.Params("tweetId"))
	if err != nil {
		return utils.BadRequest("invalid tweet id format")
	}
	if err := h.svc.Delete(c.Context(), tweetID, uid); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, nil, "tweet deleted successfully")
}
