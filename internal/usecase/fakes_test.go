package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

type fakeMessenger struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMessenger) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

// fakeAI echoes the system prompt so tests can inspect what the model saw.
type fakeAI struct {
	mu      sync.Mutex
	prompts []entity.Prompt
	reply   func(entity.Prompt) string
	chunks  []string
	err     error
}

func (f *fakeAI) record(p entity.Prompt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
}

func (f *fakeAI) GenerateResponse(_ context.Context, p entity.Prompt) (string, error) {
	f.record(p)
	if f.err != nil {
		return "", f.err
	}
	if f.reply != nil {
		return f.reply(p), nil
	}
	return "ok", nil
}

func (f *fakeAI) StreamResponse(_ context.Context, p entity.Prompt, onChunk func(string) error) error {
	f.record(p)
	for _, c := range f.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeAI) lastPrompt() entity.Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[len(f.prompts)-1]
}

// fakeLookup answers from a term -> data table.
type fakeLookup struct {
	mu    sync.Mutex
	data  map[string]string
	err   string
	calls []string
}

func (f *fakeLookup) Query(_ context.Context, term string, category entity.Category) entity.LookupResult {
	f.mu.Lock()
	f.calls = append(f.calls, category.WireName()+":"+term)
	f.mu.Unlock()

	if f.err != "" {
		return entity.TransportError(f.err)
	}
	if d, ok := f.data[term]; ok {
		return entity.Found(d)
	}
	return entity.NotFound()
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []entity.Notification
	fail bool
}

func (f *fakeNotifier) Send(_ context.Context, n entity.Notification) entity.NotificationOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	if f.fail {
		return entity.NotificationOutcome{Status: "Error: cannot connect to the Telegram notification server."}
	}
	return entity.NotificationOutcome{Sent: true, Status: NotificationSentStatus}
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, n := range f.sent {
		out[i] = n.Message
	}
	return out
}

var errBoom = errors.New("boom")
