package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load reads .env (if present) and then the process environment into T.
func Load[T any]() (T, error) {
	var cfg T

	// .env is optional; real environment variables always win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// ChatGateway is the configuration of the chat gateway process.
type ChatGateway struct {
	Log        Log
	HTTP       HTTP `envPrefix:"CHAT_"`
	Otel       Otel
	Gemini     Gemini
	Downstream Downstream
	Session    Session
}

// LookupService is the configuration of the product lookup process.
type LookupService struct {
	Log    Log
	HTTP   HTTP `envPrefix:"LOOKUP_"`
	Otel   Otel
	Lookup Lookup
}

// NotificationService is the configuration of the Telegram relay process.
type NotificationService struct {
	Log      Log
	HTTP     HTTP `envPrefix:"NOTIFICATION_"`
	Otel     Otel
	Telegram Telegram
}
