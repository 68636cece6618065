package provider

import (
	"context"
	"errors"
	"fmt"
)

// Tag identifies which backend answered a request. It is fixed at client
// construction and never inferred from endpoints at call time.
type Tag string

const (
	TagLocal Tag = "local"
	TagCloud Tag = "cloud"
	// TagNone is reported when no provider produced an answer.
	TagNone Tag = "none"
)

// Client is a single generation backend. Invoke performs exactly one
// network call with the client's configured timeout; retries and fallback
// belong to the Fallback policy, never to a client.
type Client interface {
	Invoke(ctx context.Context, prompt, system string) (string, error)
	Tag() Tag
	Model() string
}

var (
	// ErrNoProviderConfigured means the fallback chain was dispatched empty.
	ErrNoProviderConfigured = errors.New("no generation provider configured")
	// ErrTimeout means a provider did not answer within its timeout.
	ErrTimeout = errors.New("provider timed out")
	// ErrUnavailable means transport failure or a non-success HTTP status.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrAuth means the provider requires credentials and none are configured,
	// or the configured credentials were rejected.
	ErrAuth = errors.New("provider authentication failed")
	// ErrExhausted means every provider in the chain failed.
	ErrExhausted = errors.New("all providers exhausted")
)

// ExhaustedError is returned when the whole fallback chain failed. It
// carries the last underlying cause; errors.Is matches both ErrExhausted
// and the cause chain.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d providers exhausted, last error: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrExhausted, e.Last}
}
