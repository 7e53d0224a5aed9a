package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	notFound := NewCodedError(http.StatusNotFound, "B003", "budget not found")
	wrapped := fmt.Errorf("load budget: %w", notFound)

	assert.True(t, errors.Is(wrapped, notFound))
	assert.False(t, errors.Is(wrapped, NewCodedError(http.StatusNotFound, "E003", "budget not found")))
	assert.False(t, errors.Is(wrapped, NewError(http.StatusBadRequest, "budget not found")))

	var respErr *Error
	assert.True(t, errors.As(wrapped, &respErr))
	assert.Equal(t, "B003", respErr.ErrorCode)
	assert.Equal(t, http.StatusNotFound, respErr.Code)
}
