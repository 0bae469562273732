package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_WrapAndMatch(t *testing.T) {
	cause := errors.New("chat not found")
	err := fmt.Errorf("send: %w", ErrTelegram.WrapParent(cause))

	assert.ErrorIs(t, err, ErrTelegram)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrLLM)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Contains(t, err.Error(), "TELEGRAM_FAILED")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestError_WithMsgKeepsIdentity(t *testing.T) {
	err := ErrInvalidCategory.WithMsg("unknown tipe %q", "warna")

	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, `unknown tipe "warna"`, err.Msg())
	assert.Equal(t, KindValidation, err.Kind())
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestError_InternalKeepsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := ErrStore.WrapParent(cause).WithMsg("find product %q", "produk a")

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "STORE_FAILED", err.Code())
}
