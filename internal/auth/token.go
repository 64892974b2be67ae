package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var signatureEncoding = base64.RawURLEncoding.Strict()

// TokenCodec issues and verifies signed bearer tokens.
// It holds no mutable state and is safe for concurrent use.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
	method   *jwt.SigningMethodHMAC
	parser   *jwt.Parser
}

// NewTokenCodec builds a codec for the given secret and validity window.
func NewTokenCodec(secret string, validity time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	// Claims carry whole seconds, so anything shorter expires on issue.
	if validity < time.Second {
		return nil, fmt.Errorf("auth: token validity must be at least 1s, got %s", validity)
	}
	return &TokenCodec{
		secret:   []byte(secret),
		validity: validity,
		method:   jwt.SigningMethodHS512,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()})),
	}, nil
}

// Validity returns the configured token lifetime.
func (tc *TokenCodec) Validity() time.Duration {
	return tc.validity
}

// Issue signs a token for identifier carrying roles, valid from now.
func (tc *TokenCodec) Issue(identifier string, roles []string, now time.Time) (string, time.Time, error) {
	if identifier == "" {
		return "", time.Time{}, errors.New("auth: token subject is required")
	}
	if len(roles) == 0 {
		return "", time.Time{}, errors.New("auth: token requires at least one role")
	}

	expiresAt := now.Add(tc.validity)
	claims := newClaims(identifier, roles, now, expiresAt)

	token := jwt.NewWithClaims(tc.method, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

// Decode verifies the signature of tokenString and returns its claims.
// Expiry is not checked here.
func (tc *TokenCodec) Decode(tokenString string) (Claims, error) {
	parts := strings.SplitN(tokenString, ".", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return Claims{}, reject(ReasonMalformed, errors.New("token must have three segments"))
	}

	signature, err := signatureEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, reject(ReasonBadSignature, errors.New("signature is not valid base64url"))
	}
	if err := tc.method.Verify(parts[0]+"."+parts[1], signature, tc.secret); err != nil {
		return Claims{}, reject(ReasonBadSignature, err)
	}

	var claims Claims
	token, _, err := tc.parser.ParseUnverified(tokenString, &claims)
	if err != nil {
		return Claims{}, reject(ReasonMalformed, err)
	}
	if token.Method == nil || token.Method.Alg() != tc.method.Alg() {
		return Claims{}, reject(ReasonMalformed, errors.New("unexpected signing method"))
	}
	if !claims.structurallyValid() {
		return Claims{}, reject(ReasonMalformed, errors.New("required claims missing"))
	}
	return claims.clone(), nil
}
