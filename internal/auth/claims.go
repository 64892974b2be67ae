package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims describes the signed token payload.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func newClaims(subject string, roles []string, issuedAt, expiresAt time.Time) *Claims {
	return &Claims{
		Roles: append([]string(nil), roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}

// IssuedAtTime returns the iat claim, or the zero time when absent.
func (c Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func (c Claims) structurallyValid() bool {
	if c.Subject == "" || len(c.Roles) == 0 {
		return false
	}
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.After(c.IssuedAt.Time)
}

func (c Claims) clone() Claims {
	out := c
	out.Roles = append([]string(nil), c.Roles...)
	if c.IssuedAt != nil {
		out.IssuedAt = jwt.NewNumericDate(c.IssuedAt.Time)
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = jwt.NewNumericDate(c.ExpiresAt.Time)
	}
	out.Audience = append(jwt.ClaimStrings(nil), c.Audience...)
	return out
}
