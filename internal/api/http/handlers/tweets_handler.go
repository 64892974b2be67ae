package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dblab/twitterclone/internal/api/dto"
	"github.com/dblab/twitterclone/internal/service"
)

// TweetsHandler serves /api/tweets.
type TweetsHandler struct {
	tweets *service.TweetService
}

// NewTweetsHandler constructs handler.
func NewTweetsHandler(tweets *service.TweetService) *TweetsHandler {
	return &TweetsHandler{tweets: tweets}
}

// Timeline handles GET /api/tweets.
func (h *TweetsHandler) Timeline(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	tweets, err := h.tweets.Timeline(c.UserContext(), principal, c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewTweetResponses(tweets)))
}

// Get handles GET /api/tweets/:id.
func (h *TweetsHandler) Get(c *fiber.Ctx) error {
	tweet, err := h.tweets.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewTweetResponse(tweet)))
}

// Create handles POST /api/tweets.
func (h *TweetsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.TweetRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tweet, err := h.tweets.Create(c.UserContext(), principal, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewTweetResponse(tweet)))
}

// Update handles PUT /api/tweets/:id.
func (h *TweetsHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.TweetRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	tweet, err := h.tweets.Update(c.UserContext(), principal, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewTweetResponse(tweet)))
}

// Delete handles DELETE /api/tweets/:id.
func (h *TweetsHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.tweets.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
