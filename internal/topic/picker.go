// Package topic selects the subject of a post from a configured catalog.
package topic

import (
	"math/rand"
	"strings"
)

// Picker chooses topics from a fixed catalog. The catalog is immutable for
// the lifetime of the picker.
type Picker struct {
	catalog []string
	rng     *rand.Rand
}

// NewPicker copies the catalog and seeds the picker with src. A nil src uses
// the shared default source.
func NewPicker(catalog []string, src rand.Source) *Picker {
	p := &Picker{catalog: append([]string(nil), catalog...)}
	if src != nil {
		p.rng = rand.New(src)
	}
	return p
}

// Catalog returns the topics the picker chooses from.
func (p *Picker) Catalog() []string {
	return append([]string(nil), p.catalog...)
}

// Pick returns a uniformly random topic, or "" for an empty catalog.
func (p *Picker) Pick() string {
	if len(p.catalog) == 0 {
		return ""
	}
	return p.catalog[p.intn(len(p.catalog))]
}

// PickAvoiding prefers a topic not present in recent; when every catalog entry
// was recently used it degrades to a plain Pick.
func (p *Picker) PickAvoiding(recent []string) string {
	if len(p.catalog) == 0 {
		return ""
	}
	used := make(map[string]struct{}, len(recent))
	for _, r := range recent {
		used[strings.TrimSpace(r)] = struct{}{}
	}
	fresh := make([]string, 0, len(p.catalog))
	for _, t := range p.catalog {
		if _, ok := used[t]; !ok {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) == 0 {
		return p.Pick()
	}
	return fresh[p.intn(len(fresh))]
}

func (p *Picker) intn(n int) int {
	if p.rng != nil {
		return p.rng.Intn(n)
	}
	return rand.Intn(n)
}
