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

const defaultTimelineLimit = 50

// TweetService coordinates tweet workflows.
type TweetService struct {
	tweets  repository.TweetRepository
	follows repository.FollowRepository
	lookup  accountLookup
	events  publisher
}

// TweetDependencies bundles repositories for the tweet service.
type TweetDependencies struct {
	TweetRepo   repository.TweetRepository
	FollowRepo  repository.FollowRepository
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Clock       func() time.Time
}

// NewTweetService constructs the service.
func NewTweetService(deps TweetDependencies) *TweetService {
	return &TweetService{
		tweets:  deps.TweetRepo,
		follows: deps.FollowRepo,
		lookup:  accountLookup{accounts: deps.AccountRepo},
		events:  publisher{dispatcher: deps.Dispatcher, now: deps.Clock},
	}
}

// Timeline returns the caller's tweets and those of accounts they follow, newest first.
func (s *TweetService) Timeline(ctx context.Context, principal auth.Principal, limit int) ([]domain.Tweet, error) {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.ListFollowing(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTimelineLimit
	}
	authors := append([]string{actor.Email}, following...)
	tweets, err := s.tweets.ListByAuthors(ctx, authors, limit)
	if err != nil {
		return nil, err
	}
	if tweets == nil {
		tweets = []domain.Tweet{}
	}
	return tweets, nil
}

// Get returns a single tweet.
func (s *TweetService) Get(ctx context.Context, id string) (*domain.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "tweet")
	}
	return tweet, nil
}

// Create posts a tweet authored by principal.
func (s *TweetService) Create(ctx context.Context, principal auth.Principal, content string) (*domain.Tweet, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}

	tweet := &domain.Tweet{
		AuthorEmail: actor.Email,
		Content:     content,
		Hashtags:    domain.ExtractHashtags(content),
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:       events.EventTweetCreated,
		ActorEmail: actor.Email,
		Payload: events.TweetCreatedPayload{
			TweetID:  tweet.ID,
			Hashtags: tweet.Hashtags,
			Preview:  preview(tweet.Content),
		},
	})
	return tweet, nil
}

// Update replaces the content of a tweet owned by principal.
func (s *TweetService) Update(ctx context.Context, principal auth.Principal, id, content string) (*domain.Tweet, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "tweet")
	}
	if !isOwner(actor, tweet.AuthorEmail) {
		return nil, apperrors.NewForbidden("only the author may edit a tweet")
	}

	tweet.Content = content
	tweet.Hashtags = domain.ExtractHashtags(content)
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, notFound(err, "tweet")
	}
	return tweet, nil
}

// Delete removes a tweet owned by principal.
func (s *TweetService) Delete(ctx context.Context, principal auth.Principal, id string) error {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return err
	}
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "tweet")
	}
	if !isOwner(actor, tweet.AuthorEmail) {
		return apperrors.NewForbidden("only the author may delete a tweet")
	}
	return notFound(s.tweets.Delete(ctx, id), "tweet")
}
