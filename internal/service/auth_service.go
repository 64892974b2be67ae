package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dblab/twitterclone/internal/auth"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/repository"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

// AuthService coordinates registration, login and account management.
type AuthService struct {
	accounts   repository.AccountRepository
	authn      *auth.CredentialAuthenticator
	bcryptCost int
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo   repository.AccountRepository
	Authenticator *auth.CredentialAuthenticator
	BcryptCost    int
	Clock         func() time.Time
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Username  string
	Nickname  string
	Email     string
	Password  string
	BirthDate *time.Time
}

// AccountUpdateInput lists changeable account fields; nil means unchanged.
type AccountUpdateInput struct {
	Username  *string
	Nickname  *string
	Email     *string
	Password  *string
	BirthDate *time.Time
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   *domain.Account
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AuthService{
		accounts:   deps.AccountRepo,
		authn:      deps.Authenticator,
		bcryptCost: deps.BcryptCost,
		now:        clock,
	}
}

// Register creates a USER account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		Username:     strings.TrimSpace(input.Username),
		Nickname:     strings.TrimSpace(input.Nickname),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Roles:        []string{string(auth.RoleUser)},
		BirthDate:    input.BirthDate,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, conflict(err)
	}
	return account, nil
}

// Login exchanges email and password for a bearer token.
// Unknown accounts and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	now := s.now()
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		_, _, _ = s.authn.AuthenticatePassword(password, s.placeholderHash(), email, []string{string(auth.RoleUser)}, now)
		return nil, apperrors.NewInvalidCredentials()
	}

	token, expiresAt, err := s.authn.AuthenticatePassword(password, account.PasswordHash, account.ID, account.Roles, now)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}

// CurrentAccount loads the account behind principal.
func (s *AuthService) CurrentAccount(ctx context.Context, principal auth.Principal) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, principal.Identifier)
	if err != nil {
		return nil, notFound(err, "account")
	}
	return account, nil
}

// GetAccount returns the account with id.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "account")
	}
	return account, nil
}

// UpdateAccount changes an account; only its owner or an ADMIN may do so.
func (s *AuthService) UpdateAccount(ctx context.Context, principal auth.Principal, id string, input AccountUpdateInput) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "account")
	}
	if !canManageAccount(principal, account.ID) {
		return nil, apperrors.NewForbidden("cannot modify another account")
	}

	update := domain.AccountUpdate{
		Username:  trimmed(input.Username),
		Nickname:  trimmed(input.Nickname),
		BirthDate: input.BirthDate,
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		update.Email = &email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		update.PasswordHash = &hash
	}

	updated, err := s.accounts.Update(ctx, id, update)
	if err != nil {
		return nil, conflict(notFound(err, "account"))
	}
	return updated, nil
}

// DeleteAccount removes an account; only its owner or an ADMIN may do so.
func (s *AuthService) DeleteAccount(ctx context.Context, principal auth.Principal, id string) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "account")
	}
	if !canManageAccount(principal, account.ID) {
		return apperrors.NewForbidden("cannot delete another account")
	}
	return notFound(s.accounts.Delete(ctx, id), "account")
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("placeholder-password-for-unknown-accounts", s.bcryptCost)
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
