package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/yourusername/shop-chatbot/config"
	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

// Client is a Gemini backed AIRepository.
type Client struct {
	client *genai.Client
	cfg    config.Gemini
	logger *slog.Logger
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
}

var _ repository.AIRepository = (*Client)(nil)

// NewClient creates a Gemini client for cfg.Model.
func NewClient(ctx context.Context, cfg config.Gemini, logger *slog.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	inFlight := cfg.MaxInFlight
	if inFlight <= 0 {
		inFlight = 1
	}

	return &Client{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "gemini"), slog.String("model", cfg.Model)),
		sem:    make(chan struct{}, inFlight),
	}, nil
}

// newModel builds a model handle carrying the prompt's system instruction.
// Handles are cheap; one per call keeps concurrent prompts apart.
func (g *Client) newModel(prompt entity.Prompt) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.cfg.Model)
	model.SetTemperature(g.cfg.Temperature)
	if g.cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(g.cfg.MaxTokens)
	}
	if prompt.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(prompt.System))
	}
	return model
}

// GenerateResponse returns the full completion
func (g *Client) GenerateResponse(ctx context.Context, prompt entity.Prompt) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.newModel(prompt).GenerateContent(ctx, genai.Text(prompt.Question))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	return extractText(resp), nil
}

// StreamResponse forwards completion chunks to onChunk as they arrive
func (g *Client) StreamResponse(ctx context.Context, prompt entity.Prompt, onChunk func(chunk string) error) error {
	release, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	iter := g.newModel(prompt).GenerateContentStream(ctx, genai.Text(prompt.Question))
	chunks, err := forwardStream(iter, onChunk)
	if err != nil {
		return err
	}

	g.logger.DebugContext(ctx, "stream finished", slog.Int("chunks", chunks))
	return nil
}

// responseIterator is the part of *genai.GenerateContentResponseIterator
// the stream loop uses.
type responseIterator interface {
	Next() (*genai.GenerateContentResponse, error)
}

// forwardStream drains iter into onChunk, skipping responses without text.
// An onChunk error is returned as is so callers can match their own sink errors.
func forwardStream(iter responseIterator, onChunk func(chunk string) error) (int, error) {
	chunks := 0
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return chunks, nil
		}
		if err != nil {
			return chunks, fmt.Errorf("failed to stream response: %w", err)
		}

		text := extractText(resp)
		if text == "" {
			continue
		}
		chunks++
		if err := onChunk(text); err != nil {
			return chunks, err
		}
	}
}

// extractText concatenates the text parts of every candidate
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

// acquire takes a concurrency slot and waits out the minimum interval
// between two calls.
func (g *Client) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	release := func() { <-g.sem }

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if wait := g.cfg.MinInterval - now.Sub(g.last); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				release()
				return nil, ctx.Err()
			}
			now = time.Now()
		}
	}
	g.last = now

	return release, nil
}

// Close closes the underlying client
func (g *Client) Close() error {
	return g.client.Close()
}
