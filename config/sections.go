package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type HTTP struct {
	Port uint32 `env:"HTTP_PORT"`
}

// Addr returns the listen address, using fallback when no port is configured.
func (h HTTP) Addr(fallback uint32) string {
	port := h.Port
	if port == 0 {
		port = fallback
	}
	return fmt.Sprintf(":%d", port)
}

type Otel struct {
	ServiceName  string  `env:"OTEL_SERVICE_NAME"`
	CollectorURL string  `env:"OTEL_COLLECTOR_URL"`
	Insecure     bool    `env:"OTEL_INSECURE"`
	TraceIDRatio float64 `env:"OTEL_TRACE_ID_RATIO" envDefault:"0.1"`
}

// Gemini holds the LLM provider settings. The API key is mandatory.
type Gemini struct {
	APIKey      string  `env:"GEMINI_API_KEY,required,notEmpty"`
	Model       string  `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	Temperature float32 `env:"GEMINI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int32   `env:"GEMINI_MAX_OUTPUT_TOKENS" envDefault:"2048"`
	// MaxInFlight bounds concurrent generate calls.
	MaxInFlight int           `env:"GEMINI_MAX_IN_FLIGHT" envDefault:"3"`
	MinInterval time.Duration `env:"GEMINI_MIN_INTERVAL" envDefault:"350ms"`
}

// Downstream points the gateway at its sibling services.
type Downstream struct {
	RAGServerURL          string        `env:"RAG_SERVER_URL" envDefault:"http://127.0.0.1:5001/rag_query"`
	NotificationServerURL string        `env:"TELEGRAM_NOTIFICATION_SERVER_URL" envDefault:"http://127.0.0.1:5002/send_notification"`
	Timeout               time.Duration `env:"DOWNSTREAM_TIMEOUT" envDefault:"10s"`
}

type Session struct {
	MaxSessions int           `env:"SESSION_MAX" envDefault:"1000"`
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"30m"`
}

// Lookup configures the product store of the lookup service.
type Lookup struct {
	Store       StoreKind `env:"PRODUCT_STORE" envDefault:"sqlite"`
	DBPath      string    `env:"PRODUCT_DB_PATH" envDefault:"rag_data.db"`
	CatalogPath string    `env:"CATALOG_XLSX_PATH"`
	// CurrencySymbol is prefixed to prices in lookup answers.
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"$"`
}

type Telegram struct {
	BotToken    string `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`
	ChatID      int64  `env:"TELEGRAM_CHAT_ID,required"`
	APIEndpoint string `env:"TELEGRAM_API_ENDPOINT" envDefault:"https://api.telegram.org/bot%s/%s"`
	// Timeout bounds one Bot API call.
	Timeout time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
}

// StoreKind selects the product store backend.
type StoreKind uint8

const (
	StoreSQLite StoreKind = iota
	StoreMemory
)

func (k StoreKind) String() string {
	return []string{"sqlite", "memory"}[k]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *StoreKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "sqlite":
		*k = StoreSQLite
	case "memory":
		*k = StoreMemory
	default:
		return fmt.Errorf("unknown product store: %s", text)
	}
	return nil
}

type Log struct {
	Format    LogFormat  `env:"LOG_FORMAT" envDefault:"TEXT"`
	Level     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	AddSource bool       `env:"LOG_ADD_SOURCE" envDefault:"false"`
}

// LogFormat represents the logging format (JSON or Text).
type LogFormat uint8

const (
	LogFormatJSON LogFormat = iota
	LogFormatText
)

func (f LogFormat) String() string {
	return []string{"JSON", "TEXT"}[f]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *LogFormat) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "JSON":
		*f = LogFormatJSON
	case "TEXT":
		*f = LogFormatText
	default:
		return fmt.Errorf("unknown log format: %s", text)
	}
	return nil
}
