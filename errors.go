package todoagent

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when no API key is configured. It is checked at
	// startup, before any model call.
	ErrMissingCredential = errors.New("missing API key")

	// ErrMalformedResponse is reported when a model response contains neither an action
	// nor a final answer. It is passed to ErrorHook implementations and never stops the loop.
	ErrMalformedResponse = errors.New("malformed model response: no action and no final answer")

	// ErrEmptyResponse is returned when the model returns no choices.
	ErrEmptyResponse = errors.New("model returned no choices")
)

// ModelCallError wraps a failure returned by the model provider (network, auth, rate limit).
type ModelCallError struct {
	Model string
	Err   error
}

func (e *ModelCallError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("model call failed: %v", e.Err)
	}
	return fmt.Sprintf("model call to %s failed: %v", e.Model, e.Err)
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}
