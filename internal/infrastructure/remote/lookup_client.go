package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

const lookupConnectError = "Error: cannot connect to the RAG server. Make sure the lookup service is running."

type lookupRequest struct {
	Query string `json:"query"`
	Tipe  string `json:"tipe"`
}

type lookupResponse struct {
	Data  string `json:"data"`
	Found *bool  `json:"found"`
	Error string `json:"error"`
}

type lookupClient struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewLookupClient gateway client of the lookup service at url (.../rag_query)
func NewLookupClient(url string, client *http.Client, logger *slog.Logger) repository.LookupRepository {
	return &lookupClient{
		url:    url,
		client: client,
		logger: logger.With(slog.String("component", "lookup_client")),
	}
}

// Query asks for one fact; failures come back as TransportError results
func (c *lookupClient) Query(ctx context.Context, term string, category entity.Category) entity.LookupResult {
	c.logger.DebugContext(ctx, "requesting rag data", slog.String("term", term), slog.String("category", string(category)))

	var resp lookupResponse
	err := postJSON(ctx, c.client, c.url, lookupRequest{Query: term, Tipe: category.WireName()}, &resp)
	if err != nil {
		c.logger.WarnContext(ctx, "rag request failed", slog.Any("error", err))
		switch {
		case isConnectionError(err):
			return entity.TransportError(lookupConnectError)
		case resp.Error != "":
			return entity.TransportError(fmt.Sprintf("Error while fetching RAG data: %s", resp.Error))
		default:
			return entity.TransportError(fmt.Sprintf("Error while fetching RAG data: %v", err))
		}
	}

	// older lookup services only send data; fall back to the sentinel
	found := resp.Data != "" && resp.Data != entity.NotFoundSentinel
	if resp.Found != nil {
		found = *resp.Found && resp.Data != ""
	}
	if !found {
		return entity.NotFound()
	}

	c.logger.DebugContext(ctx, "rag data received", slog.String("data", resp.Data))
	return entity.Found(resp.Data)
}
