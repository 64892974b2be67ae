package auth

import (
	"errors"
	"time"
)

// CredentialAuthenticator turns presented credentials into identities or tokens.
type CredentialAuthenticator struct {
	codec     *TokenCodec
	passwords PasswordVerifier
}

// NewCredentialAuthenticator wires the codec and password collaborator.
func NewCredentialAuthenticator(codec *TokenCodec, passwords PasswordVerifier) *CredentialAuthenticator {
	if passwords == nil {
		passwords = BcryptVerifier{}
	}
	return &CredentialAuthenticator{codec: codec, passwords: passwords}
}

// AuthenticateToken verifies tokenString at instant now.
// Signature is checked first, then expiry, then roles.
func (a *CredentialAuthenticator) AuthenticateToken(tokenString string, now time.Time) (Principal, error) {
	claims, err := a.codec.Decode(tokenString)
	if err != nil {
		return Principal{}, err
	}

	if !now.Before(claims.ExpiresAtTime()) {
		return Principal{}, reject(ReasonExpired, errors.New("token validity window has elapsed"))
	}

	return Principal{
		Identifier: claims.Subject,
		Roles:      NormalizeRoles(claims.Roles),
	}, nil
}

// AuthenticatePassword issues a token when plain matches storedHash.
// Any mismatch yields ErrInvalidCredentials and no token.
func (a *CredentialAuthenticator) AuthenticatePassword(plain, storedHash, identifier string, roles []string, now time.Time) (string, time.Time, error) {
	if storedHash == "" || !a.passwords.Verify(plain, storedHash) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.codec.Issue(identifier, roles, now)
}
