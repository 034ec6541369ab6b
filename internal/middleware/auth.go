package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourorg/vidtube/services/content-service/internal/auth"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

const userIDKey = "userID"

// TokenVerifier is what the auth middleware needs from the JWT layer.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

var _ TokenVerifier = (*auth.JWTVerifier)(nil)

// RequireAuth verifies the bearer token and stores the authenticated user id
// in Locals for handlers to pick up.
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.Unauthorized("missing authorization")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.Unauthorized("invalid authorization")
		}
		sub, err := verifier.VerifyToken(parts[1])
		if err != nil {
			return utils.Unauthorized("invalid token")
		}
		uid, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			return utils.Unauthorized("invalid token subject")
		}
		c.Locals(userIDKey, uid)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user id set by RequireAuth. The
// second return is false on unauthenticated routes.
func CurrentUser(c *fiber.Ctx) (primitive.ObjectID, bool) {
	uid, ok := c.Locals(userIDKey).(primitive.ObjectID)
	return uid, ok
}

// OptionalAuth resolves the user id when a valid token is present but lets
// anonymous requests through. Used by listing endpoints that compute
// per-viewer fields.
func OptionalAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Next()
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}
		if sub, err := verifier.VerifyToken(parts[1]); err == nil {
			if uid, err := primitive.ObjectIDFromHex(sub); err == nil {
				c.Locals(userIDKey, uid)
			}
		}
		return c.Next()
	}
}
