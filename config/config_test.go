package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shop-chatbot/config"
)

func TestLoadChatGateway(t *testing.T) {
	t.Run("fails without api key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		_, err := config.Load[config.ChatGateway]()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("LOG_LEVEL", "DEBUG")

		cfg, err := config.Load[config.ChatGateway]()
		require.NoError(t, err)

		assert.Equal(t, "test-key", cfg.Gemini.APIKey)
		assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
		assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 0.0001)
		assert.Equal(t, "http://127.0.0.1:5001/rag_query", cfg.Downstream.RAGServerURL)
		assert.Equal(t, "http://127.0.0.1:5002/send_notification", cfg.Downstream.NotificationServerURL)
		assert.Equal(t, 10*time.Second, cfg.Downstream.Timeout)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.Equal(t, ":5000", cfg.HTTP.Addr(5000))
	})

	t.Run("reads prefixed port", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("CHAT_HTTP_PORT", "8080")

		cfg, err := config.Load[config.ChatGateway]()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.HTTP.Addr(5000))
	})
}

func TestLoadNotificationService(t *testing.T) {
	t.Run("requires telegram credentials", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		t.Setenv("TELEGRAM_CHAT_ID", "")

		_, err := config.Load[config.NotificationService]()
		require.Error(t, err)
	})

	t.Run("parses chat id", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
		t.Setenv("TELEGRAM_CHAT_ID", "-100200300")

		cfg, err := config.Load[config.NotificationService]()
		require.NoError(t, err)
		assert.Equal(t, int64(-100200300), cfg.Telegram.ChatID)
		assert.Equal(t, ":5002", cfg.HTTP.Addr(5002))
	})
}

func TestLoadLookupService(t *testing.T) {
	t.Setenv("PRODUCT_STORE", "memory")
	t.Setenv("CURRENCY_SYMBOL", "Rp ")

	cfg, err := config.Load[config.LookupService]()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Lookup.Store)
	assert.Equal(t, "Rp ", cfg.Lookup.CurrencySymbol)
	assert.Equal(t, "rag_data.db", cfg.Lookup.DBPath)

	t.Setenv("PRODUCT_STORE", "postgres")
	_, err = config.Load[config.LookupService]()
	assert.Error(t, err)
}
