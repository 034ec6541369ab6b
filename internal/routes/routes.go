package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourorg/vidtube/services/content-service/internal/handlers"
	"github.com/yourorg/vidtube/services/content-service/internal/middleware"
)

type Handlers struct {
	Tweets        *handlers.TweetHandler
	Subscriptions *handlers.SubscriptionHandler
	Likes         *handlers.LikeHandler
	Media         *handlers.MediaHandler
}

// Register wires the versioned API. Listing endpoints take optional auth so
// per-viewer fields resolve when a token is present.
func Register(app *fiber.App, h Handlers, verifier middleware.TokenVerifier) {
	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	api := app.Group("/api/v1")
	api.Get("/healthcheck", handlers.Healthcheck)

	tweets := api.Group("/tweets")
	tweets.Post("/", requireAuth, h.Tweets.Create)
	tweets.Get("/user/:userId", optionalAuth, h.Tweets.GetUserTweets)
	tweets.Patch("/:tweetId", requireAuth, h.Tweets.Update)
	tweets.Delete("/:tweetId", requireAuth, h.Tweets.Delete)

	subs := api.Group("/subscriptions")
	subs.Post("/:channelId", requireAuth, h.Subscriptions.Toggle)
	subs.Get("/channel/:channelId", h.Subscriptions.ChannelSubscribers)
	subs.Get("/user/:subscriberId", h.Subscriptions.SubscribedChannels)

	likes := api.Group("/likes")
	likes.Post("/tweet/:tweetId", requireAuth, h.Likes.ToggleTweetLike)

	users := api.Group("/users")
	users.Patch("/avatar", requireAuth, h.Media.UploadAvatar)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
