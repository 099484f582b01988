package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/doffers/internal/config"
	"github.com/example/doffers/internal/utils"
)

const userContextKey = "currentUser"

// AuthUser is the authenticated identity loaded into request context.
type AuthUser struct {
	ID    uuid.UUID
	Phone string
	Role  string
}

// AuthMiddleware validates session tokens and loads the authenticated
// identity into context. Tokens are accepted from the Authorization
// bearer header or the x-access-token header.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
			}
			token = parts[1]
		} else {
			token = c.Get("x-access-token")
		}

		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "access token required")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, AuthUser{ID: userID, Phone: claims.Phone, Role: claims.Role})
		return c.Next()
	}
}

// GetCurrentUser extracts the authenticated identity from context.
func GetCurrentUser(c *fiber.Ctx) (AuthUser, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return AuthUser{}, false
	}

	if user, ok := value.(AuthUser); ok {
		return user, true
	}

	return AuthUser{}, false
}
