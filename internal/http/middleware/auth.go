package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"expertbook/internal/auth"
	"expertbook/internal/model"
	"expertbook/internal/service"
)

// ClaimsLocalKey is the Fiber locals key holding *auth.Claims.
const ClaimsLocalKey = "claims"

// TokenParser validates bearer tokens.
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// AccountLookup loads the account a token was issued for.
type AccountLookup interface {
	Me(ctx context.Context, uid string) (*model.User, error)
}

// Auth requires a valid "Authorization: Bearer <jwt>" header. The account is
// reloaded on every request so the stored role wins over the token's role
// claim, and tokens of deleted accounts stop working.
func Auth(tokens TokenParser, accounts AccountLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		u, err := accounts.Me(c.UserContext(), claims.UserID)
		if errors.Is(err, service.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
		}
		if err != nil {
			return err
		}
		claims.Role = u.Role
		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after Auth.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		for _, r := range roles {
			if claims.Role == r {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}

// GetClaims returns the claims stored by Auth, or nil.
func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}
