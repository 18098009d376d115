package markdown

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document represents a Markdown file with parsed front matter.
type Document struct {
	Frontmatter map[string]any
	Body        string
}

// ParseFile reads a Markdown file and extracts front matter and body. Both
// front matter styles written by this tool are recognized: a YAML block
// between two "---" lines and a TOML block between two "+++" lines.
func ParseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	peek, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return Document{}, err
	}
	fence := ""
	switch string(peek) {
	case "---":
		fence = "---"
	case "+++":
		fence = "+++"
	}
	var fmBuf strings.Builder
	var bodyBuf strings.Builder

	if fence != "" {
		// Consume the opening fence line fully.
		if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, err
		}
		// Read until the closing fence line (exact match after trimming).
		for {
			l, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return Document{}, err
			}
			if strings.TrimSpace(l) == fence {
				break
			}
			fmBuf.WriteString(l)
			if errors.Is(err, io.EOF) {
				break
			}
		}
	}
	// The rest is body.
	for {
		l, err := br.ReadString('\n')
		bodyBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, err
		}
	}

	d := Document{
		Frontmatter: map[string]any{},
		Body:        bodyBuf.String(),
	}

	if fence != "" {
		m := map[string]any{}
		if fence == "+++" {
			err = toml.Unmarshal([]byte(fmBuf.String()), &m)
		} else {
			err = yaml.Unmarshal([]byte(fmBuf.String()), &m)
		}
		if err != nil {
			return Document{}, err
		}
		d.Frontmatter = m
	}
	return d, nil
}
