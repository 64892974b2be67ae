package service

import (
	"context"
	"errors"
	"time"

	"github.com/dblab/twitterclone/internal/auth"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/events"
	"github.com/dblab/twitterclone/internal/repository"
	apperrors "github.com/dblab/twitterclone/pkg/util/errorutil"
)

// FavoriteService manages likes on tweets.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	tweets    repository.TweetRepository
	lookup    accountLookup
	events    publisher
}

// FavoriteDependencies bundles repositories for the favorite service.
type FavoriteDependencies struct {
	FavoriteRepo repository.FavoriteRepository
	TweetRepo    repository.TweetRepository
	AccountRepo  repository.AccountRepository
	Dispatcher   events.Dispatcher
	Clock        func() time.Time
}

// NewFavoriteService constructs the service.
func NewFavoriteService(deps FavoriteDependencies) *FavoriteService {
	return &FavoriteService{
		favorites: deps.FavoriteRepo,
		tweets:    deps.TweetRepo,
		lookup:    accountLookup{accounts: deps.AccountRepo},
		events:    publisher{dispatcher: deps.Dispatcher, now: deps.Clock},
	}
}

// List returns the favorites placed on a tweet.
func (s *FavoriteService) List(ctx context.Context, tweetID string) ([]domain.Favorite, error) {
	if _, err := s.tweets.GetByID(ctx, tweetID); err != nil {
		return nil, notFound(err, "tweet")
	}
	favorites, err := s.favorites.ListByTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return favorites, nil
}

// Like records that principal likes tweetID. An account may like a tweet once.
func (s *FavoriteService) Like(ctx context.Context, principal auth.Principal, tweetID string) (*domain.Favorite, int, error) {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, 0, err
	}
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, 0, notFound(err, "tweet")
	}

	favorite := &domain.Favorite{TweetID: tweet.ID, AccountEmail: actor.Email}
	likeCount, err := s.favorites.Like(ctx, favorite)
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, 0, apperrors.NewNotFound("tweet", nil)
		}
		return nil, 0, conflict(err)
	}

	s.events.publish(ctx, events.Event{
		Type:       events.EventTweetFavorited,
		ActorEmail: actor.Email,
		Payload: events.TweetFavoritedPayload{
			TweetID:     tweet.ID,
			AuthorEmail: tweet.AuthorEmail,
			LikeCount:   likeCount,
		},
	})
	return favorite, likeCount, nil
}

// Unlike removes a favorite placed by principal and returns the new like count.
func (s *FavoriteService) Unlike(ctx context.Context, principal auth.Principal, id string) (int, error) {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return 0, err
	}
	favorite, err := s.favorites.GetByID(ctx, id)
	if err != nil {
		return 0, notFound(err, "favorite")
	}
	if !isOwner(actor, favorite.AccountEmail) {
		return 0, apperrors.NewForbidden("only the owner may remove a favorite")
	}
	likeCount, err := s.favorites.Unlike(ctx, id)
	if err != nil {
		return 0, notFound(err, "favorite")
	}
	return likeCount, nil
}
