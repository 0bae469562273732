package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yourusername/shop-chatbot/internal/apperr"
	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/usecase"
)

const SessionIDHeader = "X-Session-Id"

type chatRequest struct {
	Message   string `json:"message" validate:"notblank"`
	SessionID string `json:"session_id" validate:"max=128"`
}

type chatResponse struct {
	Response           string  `json:"response"`
	SessionID          string  `json:"session_id"`
	NotificationStatus *string `json:"notification_status,omitempty"`
}

type streamLine struct {
	ResponseChunk      *string `json:"response_chunk,omitempty"`
	NotificationStatus *string `json:"notification_status,omitempty"`
	Error              *string `json:"error,omitempty"`
}

type chatHandler struct {
	chatUC    usecase.ChatUseCase
	validator *Validator
	logger    *slog.Logger
}

// NewChatService chat gateway: POST /chat and POST /chat/stream
func NewChatService(addr string, logger *slog.Logger, chatUC usecase.ChatUseCase) *Service {
	s := newService(addr, logger)
	s.cors = true
	s.panicBody = chatServerErr

	h := &chatHandler{chatUC: chatUC, validator: s.validator, logger: s.logger}
	s.register = func(r chi.Router) {
		r.Post("/chat", h.chat)
		r.Post("/chat/stream", h.chatStream)
	}
	return s
}

func (h *chatHandler) decode(w http.ResponseWriter, r *http.Request) (entity.ChatRequest, error) {
	var body chatRequest
	if err := decodeJSON(w, r, h.validator, &body); err != nil {
		return entity.ChatRequest{}, err
	}
	return entity.ChatRequest{Message: body.Message, SessionID: body.SessionID}, nil
}

func (h *chatHandler) chat(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	reply, err := h.chatUC.Chat(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res := chatResponse{Response: reply.Response, SessionID: reply.SessionID}
	if reply.Notification != nil {
		res.NotificationStatus = &reply.Notification.Status
	}

	w.Header().Set(SessionIDHeader, reply.SessionID)
	if err := writeJSON(w, http.StatusOK, res); err != nil {
		h.logger.WarnContext(r.Context(), "error encoding chat response", slog.Any("error", err))
	}
}

// chatStream writes one JSON object per line: response chunks, then the
// notification status if one was requested, or an error line.
func (h *chatHandler) chatStream(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	started := false
	start := func() {
		if started {
			return
		}
		started = true
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set(SessionIDHeader, req.SessionID)
		w.WriteHeader(http.StatusOK)
	}
	emit := func(line streamLine) error {
		start()
		if err := enc.Encode(line); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	}

	reply, err := h.chatUC.ChatStream(r.Context(), req, func(chunk string) error {
		return emit(streamLine{ResponseChunk: &chunk})
	})
	if err != nil {
		if !started {
			h.writeError(w, r, err)
			return
		}
		h.logger.ErrorContext(r.Context(), "chat stream failed", slog.Any("error", err))
		msg := ChatApology
		if emitErr := emit(streamLine{Error: &msg}); emitErr != nil {
			h.logger.WarnContext(r.Context(), "error writing stream error line", slog.Any("error", emitErr))
		}
		return
	}

	start()
	if reply.Notification != nil {
		if err := emit(streamLine{NotificationStatus: &reply.Notification.Status}); err != nil {
			h.logger.WarnContext(r.Context(), "error writing notification status", slog.Any("error", err))
		}
	}
}

// writeError hides server side failures behind the apology text.
func (h *chatHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := toErrorResponse(err)
	if res.statusCode >= 500 || apperr.KindOf(err) == apperr.KindUpstream {
		res = chatServerErr
	}
	writeErrorResponse(w, r, h.logger, err, res)
}
