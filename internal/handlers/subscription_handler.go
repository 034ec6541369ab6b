package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourorg/vidtube/services/content-service/internal/middleware"
	"github.com/yourorg/vidtube/services/content-service/internal/services"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

type SubscriptionHandler struct {
	svc *services.SubscriptionService
}

func NewSubscriptionHandler(svc *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// POST /api/v1/subscriptions/:channelId
func (h *SubscriptionHandler) Toggle(c *fiber.Ctx) error {
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized("user not found in request")
	}
	channelID, err := primitive.ObjectIDFromHex(c.Params("channelId"))
	if err != nil {
		return utils.BadRequest("invalid channel id format")
	}
	subscribed, err := h.svc.Toggle(c.Context(), uid, channelID)
	if err != nil {
		return err
	}
	msg := "channel unsubscribed successfully"
	if subscribed {
		msg = "channel subscribed successfully"
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"subscribed": subscribed}, msg)
}

// GET /api/v1/subscriptions/channel/:channelId
func (h *SubscriptionHandler) ChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := primitive.ObjectIDFromHex(c.Params("channelId"))
	if err != nil {
		return utils.BadRequest("invalid channel id format")
	}
	total, subscribers, err := h.svc.ChannelSubscribers(c.Context(), channelID)
	if err != nil {
		return err
	}
	data := fiber.Map{"total": total, "subscribers": subscribers}
	return utils.JSONSuccess(c, fiber.StatusOK, data, "list of subscribers fetched successfully")
}

// GET /api/v1/subscriptions/user/:subscriberId
func (h *SubscriptionHandler) SubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := primitive.ObjectIDFromHex(c.Params("subscriberId"))
	if err != nil {
		return utils.BadRequest("invalid subscriber id format")
	}
	channels, err := h.svc.SubscribedChannels(c.Context(), subscriberID)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, channels, "list of subscribed channels fetched successfully")
}
