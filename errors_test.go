package todoagent

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelCallError(t *testing.T) {
	cause := errors.New("401 unauthorized")

	tests := []struct {
		name     string
		err      *ModelCallError
		expected string
	}{
		{name: "with model", err: &ModelCallError{Model: "gpt-4.1-mini", Err: cause},
			expected: "model call to gpt-4.1-mini failed: 401 unauthorized"},
		{name: "without model", err: &ModelCallError{Err: cause},
			expected: "model call failed: 401 unauthorized"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())

			wrapped := fmt.Errorf("iteration 1: %w", tc.err)
			assert.ErrorIs(t, wrapped, cause)

			var mce *ModelCallError
			assert.True(t, errors.As(wrapped, &mce))
		})
	}
}
