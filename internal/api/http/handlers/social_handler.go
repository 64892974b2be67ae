package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/dblab/twitterclone/internal/api/dto"
	"github.com/dblab/twitterclone/internal/service"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

// FollowsHandler serves /api/follows.
type FollowsHandler struct {
	follows *service.FollowService
}

// NewFollowsHandler constructs handler.
func NewFollowsHandler(follows *service.FollowService) *FollowsHandler {
	return &FollowsHandler{follows: follows}
}

// Follow handles POST /api/follows/:email.
func (h *FollowsHandler) Follow(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return apperrors.NewValidationError("invalid email", nil)
	}
	follow, err := h.follows.Follow(c.UserContext(), principal, email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewFollowResponse(follow)))
}

// Unfollow handles DELETE /api/follows/:id.
func (h *FollowsHandler) Unfollow(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.follows.Unfollow(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// FavoritesHandler serves /api/tweet/favorites.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// List handles GET /api/tweet/favorites/:tweetId.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	favorites, err := h.favorites.List(c.UserContext(), c.Params("tweetId"))
	if err != nil {
		return err
	}
	out := make([]dto.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, dto.NewFavoriteResponse(&favorites[i]))
	}
	return c.JSON(data(out))
}

// Like handles POST /api/tweet/favorites/:tweetId.
func (h *FavoritesHandler) Like(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	favorite, count, err := h.favorites.Like(c.UserContext(), principal, c.Params("tweetId"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(fiber.Map{
		"favorite":   dto.NewFavoriteResponse(favorite),
		"like_count": count,
	}))
}

// Unlike handles DELETE /api/tweet/favorites/:id.
func (h *FavoritesHandler) Unlike(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	count, err := h.favorites.Unlike(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.LikeCountResponse{LikeCount: count}))
}

// CommentsHandler serves /api/comments.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(comments *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// List handles GET /api/comments/:tweetId.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	comments, err := h.comments.List(c.UserContext(), c.Params("tweetId"))
	if err != nil {
		return err
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(data(out))
}

// Add handles POST /api/comments/:tweetId.
func (h *CommentsHandler) Add(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Add(c.UserContext(), principal, c.Params("tweetId"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewCommentResponse(comment)))
}

// Update handles PUT /api/comments/:commentId.
func (h *CommentsHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Update(c.UserContext(), principal, c.Params("commentId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewCommentResponse(comment)))
}

// Delete handles DELETE /api/comments/:commentId.
func (h *CommentsHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.UserContext(), principal, c.Params("commentId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
