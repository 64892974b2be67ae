package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dblab/twitterclone/internal/api/dto"
	"github.com/dblab/twitterclone/internal/service"
)

// ExploresHandler serves keyword search and saved keywords.
type ExploresHandler struct {
	explores *service.ExploreService
}

// NewExploresHandler constructs handler.
func NewExploresHandler(explores *service.ExploreService) *ExploresHandler {
	return &ExploresHandler{explores: explores}
}

// Saved handles GET /api/explores.
func (h *ExploresHandler) Saved(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	saved, err := h.explores.Saved(c.UserContext(), principal)
	if err != nil {
		return err
	}
	out := make([]dto.ExploreResponse, 0, len(saved))
	for i := range saved {
		out = append(out, dto.NewExploreResponse(&saved[i]))
	}
	return c.JSON(data(out))
}

// Search handles POST /api/explores/keywords.
func (h *ExploresHandler) Search(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ExploreRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.explores.Search(c.UserContext(), principal, req.Keyword)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewSearchResponse(result)))
}

// Save handles POST /api/explores.
func (h *ExploresHandler) Save(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ExploreRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	explore, err := h.explores.Save(c.UserContext(), principal, req.Keyword)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewExploreResponse(explore)))
}

// Delete handles DELETE /api/explores/:exploreId.
func (h *ExploresHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	removed, err := h.explores.Delete(c.UserContext(), principal, c.Params("exploreId"))
	if err != nil {
		return err
	}
	return c.JSON(data(fiber.Map{"removed": removed}))
}
