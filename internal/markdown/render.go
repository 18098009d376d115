package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderHTML converts a post body to HTML for operator preview.
func RenderHTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
