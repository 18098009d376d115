// Package frontmatter assembles the metadata block prefixed to a post file in
// one of two interchangeable serializations: a YAML-style `key: value` block
// fenced by ---, or a TOML-style `key = value` block fenced by +++.
package frontmatter

import (
	"fmt"
	"strings"
	"time"
)

// Style selects the serialization. It is a configuration choice fixed per
// Builder, not a per-call decision.
type Style string

const (
	YAML Style = "yaml"
	TOML Style = "toml"
)

// ParseStyle maps a config string to a Style, defaulting to YAML.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("unknown front matter style %q", s)
	}
}

// Field is a single key/value pair. Insertion order is preserved across the
// block, so identical input always serializes identically.
type Field struct {
	Key   string
	Value any
}

// Builder writes metadata blocks in its configured style.
type Builder struct {
	style Style
}

func NewBuilder(style Style) Builder {
	return Builder{style: style}
}

// Build serializes fields into a fenced metadata block, ending with a
// trailing newline after the closing fence. String values are quoted and
// escaped so the block stays parseable by a standard parser for the style.
func (b Builder) Build(fields []Field) string {
	fence := "---"
	if b.style == TOML {
		fence = "+++"
	}
	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteByte('\n')
	for _, f := range fields {
		if b.style == TOML {
			fmt.Fprintf(&sb, "%s = %s\n", f.Key, b.encode(f.Value))
		} else {
			fmt.Fprintf(&sb, "%s: %s\n", f.Key, b.encode(f.Value))
		}
	}
	sb.WriteString(fence)
	sb.WriteByte('\n')
	return sb.String()
}

func (b Builder) encode(v any) string {
	switch val := v.(type) {
	case string:
		return quote(val)
	case bool:
		return fmt.Sprintf("%t", val)
	case time.Time:
		// A bare YYYY-MM-DD parses as a date in both styles.
		return val.Format("2006-01-02")
	case int, int64, float64:
		return fmt.Sprint(val)
	default:
		return quote(fmt.Sprint(val))
	}
}

// quote double-quotes s, escaping backslashes and embedded quotes. The same
// escaping is valid for double-quoted scalars in both YAML and TOML.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
