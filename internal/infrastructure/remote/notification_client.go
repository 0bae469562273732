package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

const (
	notificationConnectError = "Error: cannot connect to the Telegram notification server."
	notificationDefaultOK    = "Notification sent."
)

type notificationRequest struct {
	Message string `json:"message"`
}

type notificationResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type notificationClient struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewNotificationClient gateway client of the notification service at url (.../send_notification)
func NewNotificationClient(url string, client *http.Client, logger *slog.Logger) repository.NotificationRepository {
	return &notificationClient{
		url:    url,
		client: client,
		logger: logger.With(slog.String("component", "notification_client")),
	}
}

// Send makes one delivery attempt; the outcome status says what happened
func (c *notificationClient) Send(ctx context.Context, n entity.Notification) entity.NotificationOutcome {
	c.logger.DebugContext(ctx, "sending telegram notification", slog.String("message", n.Message))

	var resp notificationResponse
	err := postJSON(ctx, c.client, c.url, notificationRequest{Message: n.Message}, &resp)
	if err != nil {
		c.logger.WarnContext(ctx, "notification request failed", slog.Any("error", err))
		return entity.NotificationOutcome{Sent: false, Status: notificationFailure(err, resp)}
	}

	status := resp.Status
	if status == "" {
		status = notificationDefaultOK
	}
	return entity.NotificationOutcome{Sent: true, Status: status}
}

func notificationFailure(err error, resp notificationResponse) string {
	if isConnectionError(err) {
		return notificationConnectError
	}

	var se *statusError
	if errors.As(err, &se) {
		switch {
		case resp.Status != "":
			return resp.Status
		case resp.Error != "":
			return fmt.Sprintf("Error while sending Telegram notification: %s", resp.Error)
		}
	}
	return fmt.Sprintf("Error while sending Telegram notification: %v", err)
}
