package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("Idea")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("cast vote: %w", InsufficientCredits())
	assert.Equal(t, KindInsufficientCredits, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindInsufficientCredits))
	assert.False(t, Is(wrapped, KindForbidden))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "Internal server error: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Idea not found", NotFound("Idea").Error())
	assert.Equal(t, "Maximum reply depth of 6 reached", MaxDepthExceeded(6).Error())
}
