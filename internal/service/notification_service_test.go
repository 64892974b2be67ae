package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dblab/twitterclone/internal/config"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/events"
)

type sliceSink struct {
	queued []domain.Notification
	err    error
}

func (s *sliceSink) Enqueue(n domain.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.queued = append(s.queued, n)
	return nil
}

func TestNotificationService_RoutesEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	sink := &sliceSink{}
	svc := NewNotificationService(dispatcher, sink, nil, config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "https://hooks.example.com",
	})
	svc.RegisterHandlers()
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID: "f1", Type: events.EventAccountFollowed, ActorEmail: "alice@example.com",
		Payload: events.AccountFollowedPayload{FollowID: "x", FollowingEmail: "bob@example.com"},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID: "l1", Type: events.EventTweetFavorited, ActorEmail: "bob@example.com",
		Payload: events.TweetFavoritedPayload{TweetID: "t1", AuthorEmail: "bob@example.com", LikeCount: 1},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID: "c1", Type: events.EventCommentAdded, ActorEmail: "bob@example.com",
		Payload: events.CommentAddedPayload{CommentID: "c", TweetID: "t1", AuthorEmail: "alice@example.com", Preview: "nice"},
	}))

	require.Len(t, sink.queued, 3)
	assert.Equal(t, domain.ChannelEmail, sink.queued[0].Channel)
	assert.Equal(t, "bob@example.com", sink.queued[0].Recipient)
	assert.Equal(t, "alice@example.com", sink.queued[1].Recipient)
	assert.Equal(t, "bob@example.com commented: nice", sink.queued[1].Subject)
	assert.Equal(t, domain.ChannelWebhook, sink.queued[2].Channel)
	assert.Equal(t, "c1", sink.queued[2].EventID)
}

func TestNotificationService_SinkFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.New(core))
	svc := NewNotificationService(dispatcher, &sliceSink{err: errors.New("queue full")}, nil, config.NotificationConfig{
		WebhookURL: "https://hooks.example.com",
	})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{ID: "t1", Type: events.EventTweetCreated})
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}
