package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for the transport layer.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is an application error with a machine readable code.
type Error struct {
	parent error
	kind   Kind
	code   string
	msg    string
}

// New creates an Error.
//
// code example: INVALID_CATEGORY
func New(kind Kind, code, msg string) Error {
	return Error{kind: kind, code: code, msg: msg}
}

func NewValidation(code, msg string) Error {
	return New(KindValidation, code, msg)
}

func NewUpstream(code, msg string) Error {
	return New(KindUpstream, code, msg)
}

func NewInternal(code, msg string) Error {
	return New(KindInternal, code, msg)
}

func (e Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// WrapParent attaches an underlying error to a predefined Error.
func (e Error) WrapParent(parent error) Error {
	if parent == nil {
		return e
	}
	e.parent = parent
	return e
}

// WithMsg returns a copy of e with another message.
func (e Error) WithMsg(format string, args ...any) Error {
	e.msg = fmt.Sprintf(format, args...)
	return e
}

func (e Error) Unwrap() error {
	return e.parent
}

// Is matches errors of the same kind and code, so predefined values work with errors.Is.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return e.kind == t.kind && e.code == t.code
}

func (e Error) Kind() Kind {
	return e.kind
}

func (e Error) Code() string {
	return e.code
}

func (e Error) Msg() string {
	return e.msg
}

// KindOf returns the kind of the first Error in err's chain, KindInternal if none.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

const (
	ValidationErrorCode = "VALIDATION_FAILED"
	InternalErrorCode   = "INTERNAL_ERROR"
)

var (
	ErrValidation      = NewValidation(ValidationErrorCode, "validation error")
	ErrEmptyMessage    = NewValidation("EMPTY_MESSAGE", "message is required")
	ErrEmptyQuery      = NewValidation("EMPTY_QUERY", "query is required")
	ErrInvalidCategory = NewValidation("INVALID_CATEGORY", "tipe must be one of harga, stok, detail")
	ErrLLM             = NewUpstream("LLM_FAILED", "language model request failed")
	ErrTelegram        = NewUpstream("TELEGRAM_FAILED", "failed to send Telegram notification")
	ErrStore           = NewInternal("STORE_FAILED", "product store failed")
)
