package textgen

import (
	"context"
	"log/slog"

	"blogforge/internal/post"
)

// Selector prefers a remote provider when one is configured and degrades to
// the local fallback on any unrecoverable remote failure. It never returns an
// error: the pipeline always gets a usable body.
type Selector struct {
	remote   Provider
	fallback FallbackProvider
}

// NewSelector builds a selector. remote may be nil (no credential configured).
func NewSelector(remote Provider) *Selector {
	return &Selector{remote: remote}
}

func (s *Selector) Generate(ctx context.Context, topic string) (post.Article, error) {
	if s.remote != nil {
		art, err := s.remote.Generate(ctx, topic)
		if err == nil {
			return art, nil
		}
		slog.Warn("textgen: remote provider failed, falling back to template", "topic", topic, "err", err)
	}
	return s.fallback.Generate(ctx, topic)
}
