package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dblab/twitterclone/internal/api/dto"
	"github.com/dblab/twitterclone/internal/auth"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

var validate = dto.NewValidator()

// bind decodes the JSON body into out and runs struct validation.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(out); err != nil {
		return apperrors.NewValidationError("request validation failed", map[string]any{
			"fields": dto.ValidationDetails(err),
		})
	}
	return nil
}

func currentPrincipal(c *fiber.Ctx) (auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.Principal{}, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func data(v any) fiber.Map {
	return fiber.Map{"data": v}
}
