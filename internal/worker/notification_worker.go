package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/dblab/twitterclone/internal/domain"
)

// ErrQueueFull is returned by Enqueue when the worker cannot accept more work.
var ErrQueueFull = errors.New("notification queue full")

// ErrStopped is returned by Enqueue after Stop.
var ErrStopped = errors.New("notification worker stopped")

// Deliverer sends one notification.
type Deliverer func(ctx context.Context, n domain.Notification) error

// NotificationWorker delivers notifications off the request path.
type NotificationWorker struct {
	queue      chan domain.Notification
	deliverers map[domain.NotificationChannel]Deliverer
	logger     *zap.Logger

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

// NewNotificationWorker creates a worker with a bounded queue.
func NewNotificationWorker(queueSize int, deliverers map[domain.NotificationChannel]Deliverer, logger *zap.Logger) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		queue:      make(chan domain.Notification, queueSize),
		deliverers: deliverers,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Enqueue schedules n without blocking.
func (w *NotificationWorker) Enqueue(n domain.Notification) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrStopped
	}
	select {
	case w.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start runs the delivery loop until Stop is called.
func (w *NotificationWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for n := range w.queue {
			w.deliver(ctx, n)
		}
	}()
}

// Stop closes the queue and waits for queued notifications to drain.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()
	<-w.done
}

func (w *NotificationWorker) deliver(ctx context.Context, n domain.Notification) {
	deliver, ok := w.deliverers[n.Channel]
	if !ok {
		w.logger.Warn("no deliverer for channel", zap.String("channel", string(n.Channel)), zap.String("event_id", n.EventID))
		return
	}
	if err := deliver(ctx, n); err != nil {
		w.logger.Warn("notification delivery failed",
			zap.String("channel", string(n.Channel)),
			zap.String("event_id", n.EventID),
			zap.Error(err),
		)
	}
}

// LogDeliverers returns stub deliverers that only log what would be sent.
func LogDeliverers(logger *zap.Logger, emailFrom, webhookURL string) map[domain.NotificationChannel]Deliverer {
	return map[domain.NotificationChannel]Deliverer{
		domain.ChannelEmail: func(ctx context.Context, n domain.Notification) error {
			logger.Debug("email notification",
				zap.String("from", emailFrom),
				zap.String("to", n.Recipient),
				zap.String("subject", n.Subject),
				zap.String("event_type", n.EventType))
			return nil
		},
		domain.ChannelWebhook: func(ctx context.Context, n domain.Notification) error {
			logger.Debug("webhook notification",
				zap.String("url", webhookURL),
				zap.String("event_id", n.EventID),
				zap.String("event_type", n.EventType))
			return nil
		},
	}
}
