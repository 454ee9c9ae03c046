package auth

import (
	"context"
	"net/http"

	"storefront-api/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HeaderAccessToken is the request header carrying both storefront and admin tokens.
const HeaderAccessToken = "accesstoken"

// localsUserKey is the fiber locals key under which admin claims are stored.
const localsUserKey = "user"

// UserFinder checks whether a user id still exists.
// Implemented by the users repository; keeps revoked accounts out even if
// their token has not expired.
type UserFinder interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// RequireAccessToken guards public storefront endpoints with a static shared token.
func RequireAccessToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(HeaderAccessToken) != token {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// RequireAdmin guards CMS endpoints: the header must carry a valid JWT whose
// subject still exists in the users table. Verified claims are stored in
// c.Locals for downstream handlers.
func RequireAdmin(secret string, users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get(HeaderAccessToken)
		if tokenString == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		claims, err := VerifyAccessToken(secret, tokenString)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		exists, err := users.ExistsByID(c.Context(), claims.UserID)
		if err != nil {
			logger.Get().Error("Failed to verify admin user",
				zap.String("user_id", claims.UserID),
				zap.Error(err),
			)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal Server Error",
			})
		}
		if !exists {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		c.Locals(localsUserKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the admin claims stored by RequireAdmin, if any.
func ClaimsFromCtx(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(localsUserKey).(*Claims)
	return claims
}
