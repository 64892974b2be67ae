package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dblab/twitterclone/internal/auth"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/events"
	"github.com/dblab/twitterclone/internal/repository"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

const maxContentLength = 255

// publisher stamps and publishes events; a nil dispatcher drops them.
type publisher struct {
	dispatcher events.Dispatcher
	now        func() time.Time
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		now := p.now
		if now == nil {
			now = time.Now
		}
		event.Timestamp = now()
	}
	_ = p.dispatcher.Publish(ctx, event)
}

// notFound converts a missing row into a typed 404 for resource.
func notFound(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

// conflict converts repository duplicate sentinels into 409s.
func conflict(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicateUsername),
		errors.Is(err, repository.ErrDuplicateFollow),
		errors.Is(err, repository.ErrDuplicateFavorite):
		return apperrors.NewConflict(err.Error(), nil)
	}
	return err
}

// accountLookup resolves a principal, whose identifier is an account id,
// to the account as it is stored now.
type accountLookup struct {
	accounts repository.AccountRepository
}

// actor returns the caller's account. A token for a deleted account is rejected.
func (l accountLookup) actor(ctx context.Context, principal auth.Principal) (*domain.Account, error) {
	account, err := l.accounts.GetByID(ctx, principal.Identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("account no longer exists")
		}
		return nil, err
	}
	return account, nil
}

// canManageAccount reports whether principal is the account itself or an administrator.
func canManageAccount(principal auth.Principal, accountID string) bool {
	return principal.Identifier == accountID || principal.HasAnyRole(auth.RoleAdmin)
}

func isOwner(actor *domain.Account, ownerEmail string) bool {
	return actor.Email == ownerEmail
}

// normalizeContent trims content and enforces the 1..255 character range.
func normalizeContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	n := utf8.RuneCountInString(trimmed)
	if n < 1 || n > maxContentLength {
		return "", apperrors.NewValidationError("content must be between 1 and 255 characters", map[string]any{
			"content": "length",
		})
	}
	return trimmed, nil
}

func preview(content string) string {
	const limit = 80
	if utf8.RuneCountInString(content) <= limit {
		return content
	}
	return string([]rune(content)[:limit]) + "..."
}
