package domain

import "time"

// NotificationChannel selects how a notification is delivered.
type NotificationChannel string

const (
	ChannelEmail   NotificationChannel = "email"
	ChannelWebhook NotificationChannel = "webhook"
)

// Notification is an outbound message derived from a domain event.
type Notification struct {
	Channel   NotificationChannel
	Recipient string
	EventID   string
	EventType string
	Subject   string
	CreatedAt time.Time
}
