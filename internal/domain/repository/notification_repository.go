package repository

import (
	"context"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

// NotificationRepository is the gateway's view of the notification service.
type NotificationRepository interface {
	Send(ctx context.Context, n entity.Notification) entity.NotificationOutcome
}

// Messenger delivers a text to the configured messaging channel.
type Messenger interface {
	Send(ctx context.Context, text string) error
}
