package cmd

import (
	"fmt"
	"time"

	"blogforge/internal/assemble"
	"blogforge/internal/config"
	"blogforge/internal/frontmatter"
	"blogforge/internal/imagefetch"
	"blogforge/internal/redisclient"
	"blogforge/internal/storage"
	"blogforge/internal/textgen"
	"blogforge/internal/topic"
)

// newAssembler wires the post pipeline from configuration. The returned
// cleanup closes the optional Redis connection and must always be called.
func newAssembler(cfg config.Config) (*assemble.Assembler, func(), error) {
	style, err := frontmatter.ParseStyle(cfg.Site.FrontMatter)
	if err != nil {
		return nil, nil, err
	}

	var remote textgen.Provider
	if cfg.TextGen.APIKey != "" {
		backoff, err := time.ParseDuration(cfg.TextGen.Backoff)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid textgen.backoff: %w", err)
		}
		timeout, err := time.ParseDuration(cfg.TextGen.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid textgen.timeout: %w", err)
		}
		remote = textgen.NewOpenAI(textgen.OpenAIConfig{
			APIKey:      cfg.TextGen.APIKey,
			BaseURL:     cfg.TextGen.BaseURL,
			Model:       cfg.TextGen.Model,
			MaxAttempts: cfg.TextGen.MaxAttempts,
			Backoff:     backoff,
			Timeout:     timeout,
			Strict:      cfg.TextGen.Strict,
		})
	}

	imgTimeout, err := time.ParseDuration(cfg.Image.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid image.timeout: %w", err)
	}
	var client imagefetch.Client
	switch cfg.Image.Mode {
	case "api":
		if cfg.Image.APIKey != "" {
			client = imagefetch.NewAPIClient(cfg.Image.BaseURL, cfg.Image.APIKey, cfg.Image.Model, imgTimeout)
		}
	default:
		client = imagefetch.NewURLClient(cfg.Image.BaseURL, imgTimeout)
	}
	chain := imagefetch.NewChain(
		imagefetch.Reuse{Dir: cfg.Site.ImagesDir},
		imagefetch.Remote{
			Client:      client,
			Dir:         cfg.Site.ImagesDir,
			Format:      imagefetch.Format(cfg.Image.Format),
			WebPQuality: cfg.Image.WebPQuality,
		},
	)

	cleanup := func() {}
	var history *storage.HistoryStore
	if cfg.Redis.Addr != "" {
		rdb := redisclient.New(cfg.Redis)
		history = storage.NewHistoryStore(rdb)
		cleanup = func() { rdb.Close() }
	}

	return &assemble.Assembler{
		Text:         textgen.NewSelector(remote),
		Images:       chain,
		FrontMatter:  frontmatter.NewBuilder(style),
		Topics:       topic.NewPicker(cfg.Topics, nil),
		Prompts:      topic.NewPicker(cfg.Image.Prompts, nil),
		PostsDir:     cfg.Site.PostsDir,
		ImageBaseURL: cfg.Site.ImageBaseURL,
		Draft:        cfg.Site.Draft,
		History:      history,
	}, cleanup, nil
}
