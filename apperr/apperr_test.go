package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("title", "title is required")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("tour not found")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindInvariant, KindOf(Invariant("last admin")))
	assert.Equal(t, KindStore, KindOf(Store(errors.New("boom"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("handling request: %w", NotFound("tour not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Store(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	// the public message never carries the cause
	assert.Equal(t, "something went wrong, please try again", err.Message)
}
