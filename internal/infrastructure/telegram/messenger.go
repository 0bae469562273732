package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/shop-chatbot/config"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

// Messenger sends texts to one Telegram chat through the Bot API.
type Messenger struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

var _ repository.Messenger = (*Messenger)(nil)

// NewMessenger authenticates the bot (getMe) and binds it to cfg.ChatID.
func NewMessenger(cfg config.Telegram, httpClient *http.Client, logger *slog.Logger) (*Messenger, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger = logger.With(slog.String("component", "telegram"))
	logger.Info("telegram bot authorised", slog.String("bot", bot.Self.UserName), slog.Int64("chat_id", cfg.ChatID))

	return &Messenger{bot: bot, chatID: cfg.ChatID, logger: logger}, nil
}

// Send delivers text to the configured chat, once.
func (m *Messenger) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sent, err := m.bot.Send(tgbotapi.NewMessage(m.chatID, text))
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}

	m.logger.DebugContext(ctx, "telegram message sent", slog.Int("message_id", sent.MessageID))
	return nil
}
