// Package textgen produces article bodies, remotely via an OpenAI-compatible
// chat-completions API or locally via a deterministic fallback template.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"blogforge/internal/post"

	openai "github.com/sashabaranov/go-openai"
)

// Provider generates an article body for a topic.
type Provider interface {
	Generate(ctx context.Context, topic string) (post.Article, error)
}

// ProviderError classifies a remote failure so the retry policy and the
// selector can tell transient failures from ones that cannot self-resolve.
type ProviderError struct {
	Status int // HTTP status when known, 0 for transport failures
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("textgen: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("textgen: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could succeed. Transport failures
// and server-side errors are retryable; auth, billing and rate-limit statuses
// are not.
func (e *ProviderError) Retryable() bool {
	switch {
	case e.Status == 0:
		return true
	case e.Status == http.StatusRequestTimeout:
		return true
	case e.Status >= 500:
		return true
	default:
		return false
	}
}

// IsRetryable is the predicate handed to retry.Policy. Malformed success
// responses are not retried: the collaborator answered, it just answered
// uselessly.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrMalformed) {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable()
	}
	return true
}

// classify wraps an error from the openai client into a ProviderError.
func classify(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ProviderError{Status: reqErr.HTTPStatusCode, Err: err}
	}
	return &ProviderError{Err: err}
}

// ErrMalformed marks a success response missing the expected content field.
var ErrMalformed = errors.New("textgen: response missing content")
