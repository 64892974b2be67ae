package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dblab/twitterclone/internal/config"
	"github.com/dblab/twitterclone/internal/domain"
	"github.com/dblab/twitterclone/internal/events"
)

// NotificationSink accepts notifications for delivery.
type NotificationSink interface {
	Enqueue(n domain.Notification) error
}

// NotificationService turns domain events into outbound notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	sink       NotificationSink
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sink NotificationSink, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		sink:       sink,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTweetCreated, n.handleTweetCreated)
	n.dispatcher.Subscribe(events.EventAccountFollowed, n.handleAccountFollowed)
	n.dispatcher.Subscribe(events.EventTweetFavorited, n.handleTweetFavorited)
	n.dispatcher.Subscribe(events.EventCommentAdded, n.handleCommentAdded)
}

func (n *NotificationService) handleTweetCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TweetCreated", zap.String("actor", event.ActorEmail), zap.String("event_id", event.ID))
	return n.webhook(event)
}

func (n *NotificationService) handleAccountFollowed(ctx context.Context, event events.Event) error {
	n.logger.Info("AccountFollowed", zap.String("actor", event.ActorEmail), zap.String("event_id", event.ID))
	payload, ok := event.Payload.(events.AccountFollowedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	return n.email(event, payload.FollowingEmail, event.ActorEmail+" started following you")
}

func (n *NotificationService) handleTweetFavorited(ctx context.Context, event events.Event) error {
	n.logger.Info("TweetFavorited", zap.String("actor", event.ActorEmail), zap.String("event_id", event.ID))
	payload, ok := event.Payload.(events.TweetFavoritedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	if payload.AuthorEmail == event.ActorEmail {
		return nil
	}
	return n.email(event, payload.AuthorEmail, event.ActorEmail+" liked your tweet")
}

func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("CommentAdded", zap.String("actor", event.ActorEmail), zap.String("event_id", event.ID))
	payload, ok := event.Payload.(events.CommentAddedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	if payload.AuthorEmail != event.ActorEmail {
		if err := n.email(event, payload.AuthorEmail, event.ActorEmail+" commented: "+payload.Preview); err != nil {
			return err
		}
	}
	return n.webhook(event)
}

func (n *NotificationService) email(event events.Event, to, subject string) error {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || to == "" {
		return nil
	}
	return n.enqueue(domain.Notification{
		Channel:   domain.ChannelEmail,
		Recipient: to,
		EventID:   event.ID,
		EventType: string(event.Type),
		Subject:   subject,
		CreatedAt: time.Now().UTC(),
	})
}

func (n *NotificationService) webhook(event events.Event) error {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	return n.enqueue(domain.Notification{
		Channel:   domain.ChannelWebhook,
		Recipient: n.cfg.WebhookURL,
		EventID:   event.ID,
		EventType: string(event.Type),
		CreatedAt: time.Now().UTC(),
	})
}

func (n *NotificationService) enqueue(notification domain.Notification) error {
	if n.sink == nil {
		return nil
	}
	return n.sink.Enqueue(notification)
}
