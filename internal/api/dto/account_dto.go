package dto

import (
	"time"

	"github.com/dblab/twitterclone/internal/domain"
)

const birthDateLayout = "2006-01-02"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=8,max=50"`
	Nickname  string  `json:"nickname" validate:"required,max=50"`
	Email     string  `json:"email" validate:"required,email,max=254"`
	Password  string  `json:"password" validate:"required,min=10,max=72"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountRequest carries the fields to change; omitted fields stay as they are.
type UpdateAccountRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=8,max=50"`
	Nickname  *string `json:"nickname,omitempty" validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=10,max=72"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	BirthDate *string   `json:"birth_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse maps a domain account, dropping the password hash.
func NewAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Nickname:  a.Nickname,
		Email:     a.Email,
		Roles:     a.Roles,
		CreatedAt: a.CreatedAt,
	}
	if a.BirthDate != nil {
		s := a.BirthDate.Format(birthDateLayout)
		resp.BirthDate = &s
	}
	return resp
}

// ParseBirthDate converts an optional YYYY-MM-DD string.
func ParseBirthDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
