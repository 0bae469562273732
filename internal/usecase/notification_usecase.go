package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yourusername/shop-chatbot/internal/apperr"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

// NotificationSentStatus is reported after a successful relay.
const NotificationSentStatus = "Telegram notification sent."

// NotificationUseCase relays messages to the configured Telegram chat
type NotificationUseCase interface {
	// Notify sends message once. There is no retry.
	Notify(ctx context.Context, message string) (string, error)
}

type notificationUseCase struct {
	messenger repository.Messenger
	logger    *slog.Logger
}

func NewNotificationUseCase(messenger repository.Messenger, logger *slog.Logger) NotificationUseCase {
	return &notificationUseCase{messenger: messenger, logger: logger}
}

func (u *notificationUseCase) Notify(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apperr.ErrEmptyMessage
	}

	if err := u.messenger.Send(ctx, message); err != nil {
		u.logger.ErrorContext(ctx, "telegram send failed", slog.Any("error", err))
		return "", apperr.ErrTelegram.
			WrapParent(err).
			WithMsg("failed to send Telegram notification: %v", err)
	}

	u.logger.InfoContext(ctx, "telegram notification sent", slog.Int("length", len(message)))
	return NotificationSentStatus, nil
}
