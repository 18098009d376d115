// Package assemble orchestrates the post-creation pipeline: topic selection,
// text acquisition, image acquisition, naming, front matter and persistence.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"blogforge/internal/frontmatter"
	"blogforge/internal/imagefetch"
	"blogforge/internal/post"
	"blogforge/internal/storage"
	"blogforge/internal/textgen"
	"blogforge/internal/topic"
)

// ImageSource acquires an optional cover image. It never fails: exhaustion of
// the fallback chain yields an ImageNone asset.
type ImageSource interface {
	Acquire(ctx context.Context, req imagefetch.Request) post.Image
}

// Assembler wires the pipeline components together. It owns the post record
// for the duration of one run; the content tree is the only state that
// survives a run.
type Assembler struct {
	Text         textgen.Provider
	Images       ImageSource
	FrontMatter  frontmatter.Builder
	Topics       *topic.Picker
	Prompts      *topic.Picker
	PostsDir     string
	ImageBaseURL string
	Draft        bool
	History      *storage.HistoryStore // optional
	Now          func() time.Time      // defaults to time.Now
}

// CreatePost generates and persists one post. When topicStr is empty a topic
// is picked from the catalog. Provider failures degrade and are logged; only
// persistence failures are returned — a post that cannot be written has no
// valid output.
func (a *Assembler) CreatePost(ctx context.Context, topicStr string) (post.Record, error) {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}

	if topicStr == "" {
		topicStr = a.pickTopic(ctx)
	}
	if topicStr == "" {
		return post.Record{}, errors.New("assemble: empty topic catalog and no topic given")
	}

	rec := post.New(topicStr, now)
	slog.Info("assemble: creating post", "topic", topicStr, "file", rec.Filename())

	art, err := a.Text.Generate(ctx, topicStr)
	if err != nil {
		// Providers absorb their own failures; reaching here means the
		// pipeline was wired with a bare remote provider in strict mode.
		return post.Record{}, fmt.Errorf("generate text: %w", err)
	}
	rec.Body = art.Body
	rec.Origin = art.Origin
	slog.Info("assemble: text acquired", "origin", art.Origin)

	prompt := ""
	if a.Prompts != nil {
		prompt = a.Prompts.Pick()
	}
	rec.Image = a.Images.Acquire(ctx, imagefetch.Request{
		Prompt: prompt,
		Slug:   rec.Slug,
		Date:   rec.Date,
	})
	slog.Info("assemble: image acquired", "origin", rec.Image.Origin)

	if err := a.persist(rec); err != nil {
		return post.Record{}, err
	}
	a.record(ctx, rec)
	return rec, nil
}

// Run generates count posts sequentially with a fixed inter-post delay.
func (a *Assembler) Run(ctx context.Context, count int, interval time.Duration) error {
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if i > 0 && interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
		rec, err := a.CreatePost(ctx, "")
		if err != nil {
			return err
		}
		slog.Info("assemble: post written", "file", rec.Filename(), "text", rec.Origin, "image", rec.Image.Origin)
	}
	return nil
}

func (a *Assembler) pickTopic(ctx context.Context) string {
	if n := len(a.Topics.Catalog()); a.History != nil && n > 1 {
		recent, err := a.History.RecentTopics(ctx, n-1)
		if err != nil {
			slog.Warn("assemble: history lookup failed, picking at random", "err", err)
		} else {
			return a.Topics.PickAvoiding(recent)
		}
	}
	return a.Topics.Pick()
}

// persist writes front matter, an optional image reference and the body to
// the content store. Existing files are overwritten: the filename is
// deterministic for a (title, date) pair, so a same-day re-run replaces the
// earlier post.
func (a *Assembler) persist(rec post.Record) error {
	fields := []frontmatter.Field{
		{Key: "title", Value: rec.Title},
		{Key: "date", Value: rec.Date},
		{Key: "draft", Value: a.Draft},
	}
	if rec.Image.Exists() {
		fields = append(fields, frontmatter.Field{
			Key:   "image",
			Value: path.Join(a.ImageBaseURL, rec.Image.RelativePath),
		})
	}
	meta := a.FrontMatter.Build(fields)

	content := meta + "\n"
	if rec.Image.Exists() {
		content += fmt.Sprintf("![%s](%s)\n\n", rec.Title, path.Join(a.ImageBaseURL, rec.Image.RelativePath))
	}
	content += rec.Body

	if err := os.MkdirAll(a.PostsDir, 0o755); err != nil {
		return fmt.Errorf("create posts dir: %w", err)
	}
	outPath := filepath.Join(a.PostsDir, rec.Filename())
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write post: %w", err)
	}
	return nil
}

func (a *Assembler) record(ctx context.Context, rec post.Record) {
	if a.History == nil {
		return
	}
	if err := a.History.RecordPost(ctx, rec); err != nil {
		slog.Warn("assemble: history record failed", "err", err)
	}
}
