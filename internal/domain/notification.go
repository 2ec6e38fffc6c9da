package domain

import (
	"context"
	"time"
)

// NotificationType doubles as the routing key on the real-time channel.
type NotificationType string

const (
	NotificationRequestCreated NotificationType = "request.created"
	NotificationRequestDecided NotificationType = "request.decided"
)

// Notification tells a user that a join request changed state.
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	RecipientID string           `json:"recipient_id"`
	EventID     int64            `json:"event_id"`
	EventTitle  string           `json:"event_title"`
	RequestID   int64            `json:"request_id"`
	GuestID     string           `json:"guest_id"`
	StatusID    RequestStatus    `json:"status_id"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// NotificationPublisher hands notifications to the real-time channel. Delivery to connected
// clients is the channel's responsibility.
type NotificationPublisher interface {
	Publish(ctx context.Context, n *Notification) error
}

// Notifier fans a notification out to every configured channel. It never fails the caller;
// channel errors are logged.
type Notifier interface {
	Notify(ctx context.Context, n *Notification)
}
