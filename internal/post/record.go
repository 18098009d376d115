// Package post holds the data model for a generated blog post.
package post

import (
	"fmt"
	"time"

	"blogforge/internal/slug"
)

// TextOrigin tells which strategy produced the article body.
type TextOrigin string

const (
	TextRemote   TextOrigin = "remote"
	TextFallback TextOrigin = "fallback"
)

// ImageOrigin tells which strategy produced the cover image.
type ImageOrigin string

const (
	ImageReused    ImageOrigin = "reused"
	ImageGenerated ImageOrigin = "generated"
	ImageNone      ImageOrigin = "none"
)

// Article is the body text produced by a text provider, tagged with its origin.
type Article struct {
	Body   string
	Origin TextOrigin
}

// Image references a cover asset relative to the image base URL. A zero-value
// Image (Origin == "" or ImageNone) means the post has no cover.
type Image struct {
	// RelativePath is the file name under the images directory.
	RelativePath string
	Origin       ImageOrigin
}

// Exists reports whether an asset was actually acquired.
func (i Image) Exists() bool {
	return i.RelativePath != "" && i.Origin != ImageNone && i.Origin != ""
}

// Record is a fully assembled post, owned by the assembler for one run.
type Record struct {
	Title  string
	Slug   string
	Date   time.Time
	Body   string
	Origin TextOrigin
	Image  Image
}

// New builds a Record for title on the given date. The slug is derived
// deterministically from the title, so the same title on the same day always
// maps to the same filename (re-runs overwrite).
func New(title string, date time.Time) Record {
	return Record{
		Title: title,
		Slug:  slug.Make(title),
		Date:  date,
	}
}

// Filename returns the content file name: {YYYY-MM-DD}-{slug}.md.
func (r Record) Filename() string {
	return fmt.Sprintf("%s-%s.md", r.Date.Format("2006-01-02"), r.Slug)
}
