package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dblab/twitterclone/internal/api/dto"
	"github.com/dblab/twitterclone/internal/service"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

// UsersHandler exposes account and login endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	birthDate, err := dto.ParseBirthDate(req.BirthDate)
	if err != nil {
		return apperrors.NewValidationError("invalid birth_date", nil)
	}

	account, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username:  req.Username,
		Nickname:  req.Nickname,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: birthDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.NewAccountResponse(account)))
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(data(fiber.Map{
		"account": dto.NewAccountResponse(result.Account),
		"auth":    dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
	}))
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	account, err := h.auth.CurrentAccount(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewAccountResponse(account)))
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	account, err := h.auth.GetAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewAccountResponse(account)))
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	birthDate, err := dto.ParseBirthDate(req.BirthDate)
	if err != nil {
		return apperrors.NewValidationError("invalid birth_date", nil)
	}

	account, err := h.auth.UpdateAccount(c.UserContext(), principal, c.Params("id"), service.AccountUpdateInput{
		Username:  req.Username,
		Nickname:  req.Nickname,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: birthDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(data(dto.NewAccountResponse(account)))
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.auth.DeleteAccount(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
