package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/shop-chatbot/internal/apperr"
	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/usecase"
)

type lookupRequest struct {
	Query string `json:"query" validate:"notblank"`
	Tipe  string `json:"tipe" validate:"required,oneof=harga stok detail"`
}

type lookupResponse struct {
	Data  string `json:"data"`
	Found bool   `json:"found"`
}

type lookupHandler struct {
	lookupUC  usecase.LookupUseCase
	validator *Validator
	logger    *slog.Logger
}

// NewLookupService lookup service: POST /rag_query
func NewLookupService(addr string, logger *slog.Logger, lookupUC usecase.LookupUseCase) *Service {
	s := newService(addr, logger)

	h := &lookupHandler{lookupUC: lookupUC, validator: s.validator, logger: s.logger}
	s.register = func(r chi.Router) {
		r.Post("/rag_query", h.query)
	}
	return s
}

func (h *lookupHandler) query(w http.ResponseWriter, r *http.Request) {
	var body lookupRequest
	if err := decodeJSON(w, r, h.validator, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	category, err := entity.ParseWireCategory(body.Tipe)
	if err != nil {
		writeError(w, r, h.logger, apperr.ErrInvalidCategory.WrapParent(err))
		return
	}

	result, err := h.lookupUC.Query(r.Context(), body.Query, category)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "rag query answered",
		slog.String("query", body.Query),
		slog.String("tipe", body.Tipe),
		slog.Bool("found", result.IsFound()),
	)
	if err := writeJSON(w, http.StatusOK, lookupResponse{Data: result.Data, Found: result.IsFound()}); err != nil {
		h.logger.WarnContext(r.Context(), "error encoding lookup response", slog.Any("error", err))
	}
}
