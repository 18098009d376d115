package imagefetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"blogforge/internal/post"

	"github.com/chai2010/webp"
)

// Format selects the on-disk encoding for remotely acquired covers.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// Remote acquires an image from a collaborator and writes it into Dir,
// re-encoded to the configured format. Any failure is reported to the chain
// as an error, not a panic; the next strategy takes over.
type Remote struct {
	Client      Client
	Dir         string
	Format      Format
	WebPQuality int
}

func (Remote) Name() string { return "remote-acquire" }

func (r Remote) Fetch(ctx context.Context, req Request) (post.Image, error) {
	if r.Client == nil {
		return post.Image{}, fmt.Errorf("no image client configured")
	}
	raw, err := r.Client.FetchBytes(ctx, req.Prompt)
	if err != nil {
		return post.Image{}, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return post.Image{}, fmt.Errorf("decode image: %w", err)
	}

	format := r.Format
	if format == "" {
		format = FormatPNG
	}
	name := fmt.Sprintf("%s-%s.%s", req.Date.Format("2006-01-02"), req.Slug, format)
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return post.Image{}, fmt.Errorf("create images dir: %w", err)
	}
	f, err := os.Create(filepath.Join(r.Dir, name))
	if err != nil {
		return post.Image{}, fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatWebP:
		quality := r.WebPQuality
		if quality <= 0 || quality > 100 {
			quality = 85
		}
		if err := webp.Encode(f, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return post.Image{}, fmt.Errorf("encode webp: %w", err)
		}
	default:
		if err := png.Encode(f, img); err != nil {
			return post.Image{}, fmt.Errorf("encode png: %w", err)
		}
	}
	return post.Image{RelativePath: name, Origin: post.ImageGenerated}, nil
}
