package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/shop-chatbot/internal/apperr"
	"github.com/yourusername/shop-chatbot/internal/usecase"
)

type notificationRequest struct {
	Message string `json:"message" validate:"notblank"`
}

type notificationResponse struct {
	Status string `json:"status"`
}

type notificationHandler struct {
	notificationUC usecase.NotificationUseCase
	validator      *Validator
	logger         *slog.Logger
}

// NewNotificationService notification relay: POST /send_notification
func NewNotificationService(addr string, logger *slog.Logger, notificationUC usecase.NotificationUseCase) *Service {
	s := newService(addr, logger)

	h := &notificationHandler{notificationUC: notificationUC, validator: s.validator, logger: s.logger}
	s.register = func(r chi.Router) {
		r.Post("/send_notification", h.send)
	}
	return s
}

func (h *notificationHandler) send(w http.ResponseWriter, r *http.Request) {
	var body notificationRequest
	if err := decodeJSON(w, r, h.validator, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	status, err := h.notificationUC.Notify(r.Context(), body.Message)
	if err != nil {
		var appErr apperr.Error
		if errors.As(err, &appErr) && appErr.Kind() == apperr.KindValidation {
			writeError(w, r, h.logger, err)
			return
		}

		// relay failures keep the {"status"} shape callers already parse
		msg := "failed to send Telegram notification"
		if errors.As(err, &appErr) {
			msg = appErr.Msg()
		}
		h.logger.ErrorContext(r.Context(), "notification relay failed", slog.Any("error", err))
		if err := writeJSON(w, http.StatusInternalServerError, notificationResponse{Status: msg}); err != nil {
			h.logger.WarnContext(r.Context(), "error encoding notification response", slog.Any("error", err))
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, notificationResponse{Status: status}); err != nil {
		h.logger.WarnContext(r.Context(), "error encoding notification response", slog.Any("error", err))
	}
}
