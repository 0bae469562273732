package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shop-chatbot/internal/apperr"
	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/infrastructure/storage"
)

type chatFixture struct {
	ai       *fakeAI
	lookup   *fakeLookup
	notifier *fakeNotifier
	uc       ChatUseCase
}

func newChatFixture(data map[string]string) *chatFixture {
	f := &chatFixture{
		ai:       &fakeAI{},
		lookup:   &fakeLookup{data: data},
		notifier: &fakeNotifier{},
	}
	f.uc = NewChatUseCase(f.ai, f.lookup, f.notifier, storage.NewMemorySessionRepository(100, time.Hour), discardLogger())
	return f
}

func TestChatUseCase_PriceQuestion(t *testing.T) {
	f := newChatFixture(map[string]string{"produk a": "Price of Produk A is $1200.00"})
	f.ai.reply = func(p entity.Prompt) string { return "Harga Produk A adalah $1200.00." }

	reply, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: "berapa harga produk a"})
	require.NoError(t, err)

	assert.Equal(t, entity.CategoryPrice, reply.Intent.Category)
	assert.Equal(t, "produk a", reply.Intent.Term)
	assert.Equal(t, []string{"harga:produk a"}, f.lookup.calls)
	assert.True(t, reply.Lookup.IsFound())
	assert.Contains(t, f.ai.lastPrompt().System, "Price of Produk A is $1200.00")
	assert.Equal(t, "Harga Produk A adalah $1200.00.", reply.Response)
	assert.Nil(t, reply.Notification)
	assert.Empty(t, f.notifier.sent)
	assert.NotEmpty(t, reply.SessionID)
}

func TestChatUseCase_KeepsCallerSessionID(t *testing.T) {
	f := newChatFixture(nil)

	reply, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: "halo", SessionID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", reply.SessionID)
	assert.Empty(t, f.lookup.calls)
	assert.Contains(t, f.ai.lastPrompt().System, noContextNeeded)
}

func TestChatUseCase_EmptyMessage(t *testing.T) {
	f := newChatFixture(nil)

	_, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: " \n"})
	assert.ErrorIs(t, err, apperr.ErrEmptyMessage)
	assert.Empty(t, f.ai.prompts)
}

func TestChatUseCase_LookupTransportError(t *testing.T) {
	f := newChatFixture(nil)
	f.lookup.err = "Error: cannot connect to the RAG server. Make sure the lookup service is running."

	reply, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: "stok produk a kirim ke telegram"})
	require.NoError(t, err)

	assert.Equal(t, entity.LookupTransportError, reply.Lookup.Status)
	assert.Contains(t, f.ai.lastPrompt().System, f.lookup.err)
	require.NotNil(t, reply.Notification)
	assert.False(t, reply.Notification.Sent)
	assert.Equal(t, NothingToForwardMsg, reply.Notification.Status)
	assert.Empty(t, f.notifier.sent)
}

func TestChatUseCase_UrgentNotification(t *testing.T) {
	f := newChatFixture(nil)

	reply, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: "Penting: pesanan saya belum sampai"})
	require.NoError(t, err)

	require.NotNil(t, reply.Notification)
	assert.True(t, reply.Notification.Sent)
	assert.Equal(t, []string{"Important message from chatbot: Penting: pesanan saya belum sampai"}, f.notifier.messages())
}

func TestChatUseCase_NotificationFailureIsReported(t *testing.T) {
	f := newChatFixture(nil)
	f.notifier.fail = true

	reply, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: "urgent tolong"})
	require.NoError(t, err)
	require.NotNil(t, reply.Notification)
	assert.False(t, reply.Notification.Sent)
	assert.Equal(t, "Error: cannot connect to the Telegram notification server.", reply.Notification.Status)
}

func TestChatUseCase_ForwardFromSameRequest(t *testing.T) {
	f := newChatFixture(map[string]string{"produk a": "Stock of Produk A currently available: 50 units"})

	reply, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: "stok produk a, kirim ke telegram"})
	require.NoError(t, err)

	require.NotNil(t, reply.Notification)
	assert.True(t, reply.Notification.Sent)
	assert.Equal(t, []string{"Product info from chatbot: Stock of Produk A currently available: 50 units"}, f.notifier.messages())
}

func TestChatUseCase_ForwardFromSession(t *testing.T) {
	f := newChatFixture(map[string]string{"produk a": "Price of Produk A is $1200.00"})
	ctx := context.Background()

	first, err := f.uc.Chat(ctx, entity.ChatRequest{Message: "harga produk a"})
	require.NoError(t, err)

	reply, err := f.uc.Chat(ctx, entity.ChatRequest{Message: "kirim ke telegram", SessionID: first.SessionID})
	require.NoError(t, err)
	require.NotNil(t, reply.Notification)
	assert.Equal(t, []string{"Product info from chatbot: Price of Produk A is $1200.00"}, f.notifier.messages())

	// another session has nothing to forward
	other, err := f.uc.Chat(ctx, entity.ChatRequest{Message: "kirim ke telegram", SessionID: "someone-else"})
	require.NoError(t, err)
	require.NotNil(t, other.Notification)
	assert.Equal(t, NothingToForwardMsg, other.Notification.Status)
	assert.Len(t, f.notifier.sent, 1)
}

func TestChatUseCase_ConcurrentSessionsDoNotLeak(t *testing.T) {
	const sessions = 32

	data := make(map[string]string, sessions)
	for i := range sessions {
		data[fmt.Sprintf("item %d", i)] = fmt.Sprintf("Details of Item %d", i)
	}
	f := newChatFixture(data)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)

			_, err := f.uc.Chat(ctx, entity.ChatRequest{Message: fmt.Sprintf("detail item %d", i), SessionID: id})
			assert.NoError(t, err)
			_, err = f.uc.Chat(ctx, entity.ChatRequest{Message: "teruskan ke telegram", SessionID: id})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	want := make([]string, 0, sessions)
	for i := range sessions {
		want = append(want, fmt.Sprintf("Product info from chatbot: Details of Item %d", i))
	}
	assert.ElementsMatch(t, want, f.notifier.messages())
}

func TestChatUseCase_LLMFailureSkipsNotification(t *testing.T) {
	f := newChatFixture(nil)
	f.ai.err = errBoom

	_, err := f.uc.Chat(context.Background(), entity.ChatRequest{Message: "urgent halo"})
	assert.ErrorIs(t, err, apperr.ErrLLM)
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.notifier.sent)
}

func TestChatUseCase_Stream(t *testing.T) {
	f := newChatFixture(nil)
	f.ai.chunks = []string{"Hal", "o, ada ", "yang bisa dibantu?"}

	var got []string
	reply, err := f.uc.ChatStream(context.Background(), entity.ChatRequest{Message: "penting halo"}, func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, f.ai.chunks, got)
	assert.Equal(t, "Halo, ada yang bisa dibantu?", reply.Response)
	require.NotNil(t, reply.Notification)
	assert.True(t, reply.Notification.Sent)
}

func TestChatUseCase_StreamSinkError(t *testing.T) {
	f := newChatFixture(nil)
	f.ai.chunks = []string{"a", "b"}

	_, err := f.uc.ChatStream(context.Background(), entity.ChatRequest{Message: "urgent"}, func(string) error {
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, apperr.ErrLLM)
	assert.Empty(t, f.notifier.sent)
}

func TestChatUseCase_StreamLLMError(t *testing.T) {
	f := newChatFixture(nil)
	f.ai.chunks = []string{"partial"}
	f.ai.err = errBoom

	reply, err := f.uc.ChatStream(context.Background(), entity.ChatRequest{Message: "halo"}, func(string) error { return nil })
	assert.ErrorIs(t, err, apperr.ErrLLM)
	assert.Equal(t, "partial", reply.Response)
}
