package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// closedURL returns an address nothing listens on.
func closedURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr + "/x"
}

func jsonServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupClientQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `{"data":"Price of Produk A is $1200.00","found":true}`, func(r *http.Request) {
			var req lookupRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, lookupRequest{Query: "produk a", Tipe: "harga"}, req)
		})

		got := NewLookupClient(srv.URL, srv.Client(), discardLogger()).Query(ctx, "produk a", entity.CategoryPrice)
		assert.Equal(t, entity.Found("Price of Produk A is $1200.00"), got)
	})

	t.Run("not found flag", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `{"data":"No relevant data found in the database.","found":false}`, nil)

		got := NewLookupClient(srv.URL, srv.Client(), discardLogger()).Query(ctx, "kulkas", entity.CategoryStock)
		assert.Equal(t, entity.LookupNotFound, got.Status)
		assert.Equal(t, entity.NotFoundSentinel, got.Data)
	})

	t.Run("legacy sentinel without flag", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `{"data":"No relevant data found in the database."}`, nil)

		got := NewLookupClient(srv.URL, srv.Client(), discardLogger()).Query(ctx, "kulkas", entity.CategoryDetail)
		assert.Equal(t, entity.LookupNotFound, got.Status)
	})

	t.Run("bad request", func(t *testing.T) {
		srv := jsonServer(t, http.StatusBadRequest, `{"error":"invalid tipe"}`, nil)

		got := NewLookupClient(srv.URL, srv.Client(), discardLogger()).Query(ctx, "x", entity.CategoryDetail)
		assert.Equal(t, entity.LookupTransportError, got.Status)
		assert.Equal(t, "Error while fetching RAG data: invalid tipe", got.Data)
	})

	t.Run("connection refused", func(t *testing.T) {
		got := NewLookupClient(closedURL(t), NewHTTPClient(time.Second), discardLogger()).Query(ctx, "x", entity.CategoryPrice)
		assert.Equal(t, entity.TransportError(lookupConnectError), got)
	})

	t.Run("timeout is not a connection error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		got := NewLookupClient(srv.URL, NewHTTPClient(20*time.Millisecond), discardLogger()).Query(ctx, "x", entity.CategoryPrice)
		assert.Equal(t, entity.LookupTransportError, got.Status)
		assert.Contains(t, got.Data, "Error while fetching RAG data")
	})
}

func TestNotificationClientSend(t *testing.T) {
	ctx := context.Background()

	t.Run("sent", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `{"status":"Telegram notification sent."}`, func(r *http.Request) {
			var req notificationRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "hello", req.Message)
		})

		got := NewNotificationClient(srv.URL, srv.Client(), discardLogger()).Send(ctx, entity.Notification{Message: "hello"})
		assert.Equal(t, entity.NotificationOutcome{Sent: true, Status: "Telegram notification sent."}, got)
	})

	t.Run("relay failure keeps service status", func(t *testing.T) {
		srv := jsonServer(t, http.StatusInternalServerError, `{"status":"failed to send Telegram notification: chat not found"}`, nil)

		got := NewNotificationClient(srv.URL, srv.Client(), discardLogger()).Send(ctx, entity.Notification{Message: "hello"})
		assert.False(t, got.Sent)
		assert.Equal(t, "failed to send Telegram notification: chat not found", got.Status)
	})

	t.Run("connection refused", func(t *testing.T) {
		got := NewNotificationClient(closedURL(t), NewHTTPClient(time.Second), discardLogger()).Send(ctx, entity.Notification{Message: "hello"})
		assert.Equal(t, entity.NotificationOutcome{Sent: false, Status: notificationConnectError}, got)
	})

	t.Run("garbage body", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, `not json`, nil)

		got := NewNotificationClient(srv.URL, srv.Client(), discardLogger()).Send(ctx, entity.Notification{Message: "hello"})
		assert.False(t, got.Sent)
		assert.Contains(t, got.Status, "Error while sending Telegram notification")
	})
}
