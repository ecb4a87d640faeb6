package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "registry unreachable")

	assert.True(t, HasCode(err, CodeUnavailable))
	assert.False(t, HasCode(err, CodeInvalidSiret))
	assert.ErrorIs(t, err, cause)

	t.Run("survives fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("join: %w", err)
		assert.True(t, Is(wrapped, CodeUnavailable))
		assert.Equal(t, CodeUnavailable, CodeOf(wrapped))
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(cause))
		assert.False(t, HasCode(cause, CodeInternal))
		assert.Empty(t, MessageOf(cause))
	})
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "already_member: user already belongs to organization",
		New(CodeAlreadyMember, "user already belongs to organization").Error())
	assert.Equal(t, "internal_error: save failed: boom",
		Wrap(errors.New("boom"), CodeInternal, "save failed").Error())
}
