// Package imagefetch acquires a cover image through an ordered fallback
// chain: reuse an existing asset, acquire one remotely, or omit the image.
package imagefetch

import (
	"context"
	"log/slog"
	"time"

	"blogforge/internal/post"
)

// Request carries everything a strategy needs to produce an asset.
type Request struct {
	Prompt string
	Slug   string
	Date   time.Time
}

// Fetcher is one strategy in the chain.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (post.Image, error)
	Name() string
}

// Chain tries each strategy in order. A failing strategy is logged and the
// next one is tried; exhaustion yields an ImageNone asset, never an error —
// a missing cover is non-fatal end to end.
type Chain struct {
	strategies []Fetcher
}

func NewChain(strategies ...Fetcher) *Chain {
	return &Chain{strategies: strategies}
}

func (c *Chain) Acquire(ctx context.Context, req Request) post.Image {
	for _, s := range c.strategies {
		img, err := s.Fetch(ctx, req)
		if err != nil {
			slog.Warn("imagefetch: strategy failed, trying next", "strategy", s.Name(), "err", err)
			continue
		}
		slog.Info("imagefetch: cover acquired", "strategy", s.Name(), "file", img.RelativePath)
		return img
	}
	slog.Info("imagefetch: no cover acquired, post will have no image")
	return post.Image{Origin: post.ImageNone}
}
