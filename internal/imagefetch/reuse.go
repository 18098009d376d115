package imagefetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"blogforge/internal/post"
)

// Reuse copies the most recent prior asset under a name derived from the
// current date and slug. The source file is never mutated or removed. It
// exists so image-generation outages still yield a visually non-empty post.
type Reuse struct {
	Dir string
}

func (Reuse) Name() string { return "reuse-existing" }

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

func (r Reuse) Fetch(_ context.Context, req Request) (post.Image, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return post.Image{}, fmt.Errorf("read images dir: %w", err)
	}
	var newest string
	var newestMod int64
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = e.Name()
			newestMod = info.ModTime().UnixNano()
		}
	}
	if newest == "" {
		return post.Image{}, errors.New("no prior asset to reuse")
	}

	name := fmt.Sprintf("%s-%s%s", req.Date.Format("2006-01-02"), req.Slug, strings.ToLower(filepath.Ext(newest)))
	if name == newest {
		// The newest asset already belongs to this post; re-runs keep it.
		return post.Image{RelativePath: name, Origin: post.ImageReused}, nil
	}
	if err := copyFile(filepath.Join(r.Dir, newest), filepath.Join(r.Dir, name)); err != nil {
		return post.Image{}, fmt.Errorf("copy prior asset: %w", err)
	}
	return post.Image{RelativePath: name, Origin: post.ImageReused}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
