package worker

import (
	"context"
	"log/slog"
	"time"

	"blogforge/internal/assemble"
)

// PostWorker generates one post per interval until the context is cancelled.
// Each post's internal steps stay strictly sequential; only whole posts are
// spaced out by the ticker.
type PostWorker struct {
	Assembler *assemble.Assembler
	Interval  time.Duration
}

func (w *PostWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 24 * time.Hour
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *PostWorker) runOnce(ctx context.Context) {
	rec, err := w.Assembler.CreatePost(ctx, "")
	if err != nil {
		slog.Error("post worker: run failed", "error", err)
		return
	}
	slog.Info("post worker: post generated", "file", rec.Filename(), "text", rec.Origin, "image", rec.Image.Origin)
}
