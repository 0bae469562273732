package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/shop-chatbot/internal/apperr"
)

const maxBodyBytes = 1 << 20

// ChatApology is the only error text a chat client sees for server side failures.
const ChatApology = "Sorry, an internal chatbot error occurred. Please try again later."

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code,omitempty"`
	Details []fieldError `json:"details,omitempty"`

	statusCode int
}

var internalServerErr = errorResponse{
	Error:      "an unknown error occurred",
	Code:       apperr.InternalErrorCode,
	statusCode: http.StatusInternalServerError,
}

// chatServerErr replaces every server side failure on the chat gateway.
var chatServerErr = errorResponse{
	Error:      ChatApology,
	Code:       apperr.InternalErrorCode,
	statusCode: http.StatusInternalServerError,
}

func toErrorResponse(err error) errorResponse {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]fieldError, len(validationErrs))
		msgs := make([]string, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = fieldError{Field: fe.Field(), Message: ValidationErrorMessage(fe)}
			msgs[i] = fe.Field() + " " + details[i].Message
		}
		return errorResponse{
			Error:      strings.Join(msgs, "; "),
			Code:       apperr.ValidationErrorCode,
			Details:    details,
			statusCode: http.StatusBadRequest,
		}
	}

	var appErr apperr.Error
	if errors.As(err, &appErr) {
		res := errorResponse{Error: appErr.Msg(), Code: appErr.Code()}
		switch appErr.Kind() {
		case apperr.KindValidation:
			res.statusCode = http.StatusBadRequest
		case apperr.KindUpstream:
			res.statusCode = http.StatusBadGateway
		default:
			return internalServerErr
		}
		return res
	}

	return internalServerErr
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and JSON body and logs it.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	writeErrorResponse(w, r, logger, err, toErrorResponse(err))
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, res errorResponse) {
	logLevel := slog.LevelInfo
	if res.statusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.statusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := writeJSON(w, res.statusCode, res); err != nil {
		logger.ErrorContext(r.Context(), "error encoding error response", slog.Any("error", err))
	}
}

// decodeJSON reads a JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v *Validator, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.ErrValidation.
			WrapParent(err).
			WithMsg("invalid JSON body: %v", err)
	}
	if err := v.Validate(dst); err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}
