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

// CommentService manages replies to tweets.
type CommentService struct {
	comments repository.CommentRepository
	tweets   repository.TweetRepository
	lookup   accountLookup
	events   publisher
}

// CommentDependencies bundles repositories for the comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TweetRepo   repository.TweetRepository
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Clock       func() time.Time
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments: deps.CommentRepo,
		tweets:   deps.TweetRepo,
		lookup:   accountLookup{accounts: deps.AccountRepo},
		events:   publisher{dispatcher: deps.Dispatcher, now: deps.Clock},
	}
}

// List returns the comments of a tweet, oldest first.
func (s *CommentService) List(ctx context.Context, tweetID string) ([]domain.Comment, error) {
	if _, err := s.tweets.GetByID(ctx, tweetID); err != nil {
		return nil, notFound(err, "tweet")
	}
	comments, err := s.comments.ListByTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

// Add attaches a comment by principal to an existing tweet.
func (s *CommentService) Add(ctx context.Context, principal auth.Principal, tweetID, content string) (*domain.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, notFound(err, "tweet")
	}

	comment := &domain.Comment{
		TweetID:     tweet.ID,
		AuthorEmail: actor.Email,
		Content:     content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:       events.EventCommentAdded,
		ActorEmail: actor.Email,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			TweetID:     tweet.ID,
			AuthorEmail: tweet.AuthorEmail,
			Preview:     preview(comment.Content),
		},
	})
	return comment, nil
}

// Update edits a comment written by principal.
func (s *CommentService) Update(ctx context.Context, principal auth.Principal, id, content string) (*domain.Comment, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "comment")
	}
	if !isOwner(actor, comment.AuthorEmail) {
		return nil, apperrors.NewForbidden("only the author may edit a comment")
	}

	comment.Content = content
	if err := s.comments.UpdateContent(ctx, comment); err != nil {
		return nil, notFound(err, "comment")
	}
	return comment, nil
}

// Delete removes a comment written by principal.
func (s *CommentService) Delete(ctx context.Context, principal auth.Principal, id string) error {
	actor, err := s.lookup.actor(ctx, principal)
	if err != nil {
		return err
	}
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "comment")
	}
	if !isOwner(actor, comment.AuthorEmail) {
		return apperrors.NewForbidden("only the author may delete a comment")
	}
	return notFound(s.comments.Delete(ctx, id), "comment")
}
