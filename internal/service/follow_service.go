package service

import (
	"context"
	"time"

	"github.com/dblab/twitterclone/internal/auth"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/events"
	"github.com/dblab/twitterclone/internal/repository"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

// FollowService manages follower relationships.
type FollowService struct {
	follows  repository.FollowRepository
	accounts repository.AccountRepository
	lookup   accountLookup
	events   publisher
}

// FollowDependencies bundles repositories for the follow service.
type FollowDependencies struct {
	FollowRepo  repository.FollowRepository
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Clock       func() time.Time
}

// NewFollowService constructs the service.
func NewFollowService(deps FollowDependencies) *FollowService {
	return &FollowService{
		follows:  deps.FollowRepo,
		accounts: deps.AccountRepo,
		lookup:   accountLookup{accounts: deps.AccountRepo},
		events:   publisher{dispatcher: deps.Dispatcher, now: deps.Clock},
	}
}

// Follow subscribes principal to the account registered under email.
func (s *FollowService) Follow(ctx context.Context, principal auth.Principal, email string) (*domain.Follow, error) {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}
	target, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFound(err, "account")
	}
	if target.ID == actor.ID {
		return nil, apperrors.NewValidationError("cannot follow yourself", nil)
	}

	follow := &domain.Follow{
		FollowerEmail:  actor.Email,
		FollowingEmail: target.Email,
	}
	if err := s.follows.Create(ctx, follow); err != nil {
		return nil, conflict(err)
	}

	s.events.publish(ctx, events.Event{
		Type:       events.EventAccountFollowed,
		ActorEmail: actor.Email,
		Payload: events.AccountFollowedPayload{
			FollowID:       follow.ID,
			FollowingEmail: follow.FollowingEmail,
		},
	})
	return follow, nil
}

// Unfollow removes a follow created by principal.
func (s *FollowService) Unfollow(ctx context.Context, principal auth.Principal, id string) error {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return err
	}
	follow, err := s.follows.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "follow")
	}
	if !isOwner(actor, follow.FollowerEmail) {
		return apperrors.NewForbidden("only the follower may unfollow")
	}
	return notFound(s.follows.Delete(ctx, id), "follow")
}
