package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

// RequireAuthenticated rejects anonymous callers with 401.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !SecurityContextFrom(c).IsAuthenticated() {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		if !principal.HasAnyRole(allowed...) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
