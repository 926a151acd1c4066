package webui

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCompleted      = errors.New("webui: request already done")
	ErrClosed                = errors.New("webui: request closed")
	ErrMalformedImagePayload = errors.New("webui: malformed image payload")
)

// TransportError reports a network failure or a non-2xx response.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("webui: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("webui: %s %s: %s", e.Method, e.URL, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
