// Package catalog holds the read-only listing of lost and found items and
// the filter applied to it.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/lostfound/internal/common"
)

//go:embed catalog.yaml
var builtin []byte

// Kind says whether an item was lost or found.
type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

// Filter selects entries by kind.
type Filter string

const (
	FilterAll   Filter = "all"
	FilterLost  Filter = "lost"
	FilterFound Filter = "found"
)

// Filters lists the available filters in display order.
var Filters = []Filter{FilterAll, FilterLost, FilterFound}

// ParseFilter converts s into a Filter. An empty string selects FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterLost, FilterFound:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownFilter, s)
	}
}

// Match reports whether an entry of kind k passes the filter.
func (f Filter) Match(k Kind) bool {
	return f == FilterAll || Kind(f) == k
}

// Entry is one listing record.
type Entry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Category    string `yaml:"category"`
	Location    string `yaml:"location"`
	Date        string `yaml:"date"`
	Kind        Kind   `yaml:"kind"`
}

// Source supplies the ordered catalog.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// StaticSource serves a fixed slice. Callers receive a copy.
type StaticSource []Entry

func (s StaticSource) Entries(context.Context) ([]Entry, error) {
	out := make([]Entry, len(s))
	copy(out, s)
	return out, nil
}

// LoadYAML decodes a catalog document.
func LoadYAML(data []byte) (StaticSource, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, oops.Code("CATALOG_DECODE").Wrapf(err, "decode catalog")
	}
	for i, e := range entries {
		if e.Kind != KindLost && e.Kind != KindFound {
			return nil, oops.Code("CATALOG_DECODE").
				With("index", i, "id", e.ID).
				Errorf("entry has unknown kind %q", e.Kind)
		}
	}
	return StaticSource(entries), nil
}

// LoadFile reads a catalog document from path.
func LoadFile(path string) (StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("CATALOG_READ").With("path", path).Wrapf(err, "read catalog")
	}
	return LoadYAML(data)
}

// Builtin returns the catalog shipped with the binary.
func Builtin() StaticSource {
	s, err := LoadYAML(builtin)
	if err != nil {
		panic(err)
	}
	return s
}

// Apply returns the entries passing f, in their original order. The input
// is never modified.
func Apply(entries []Entry, f Filter) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e.Kind) {
			out = append(out, e)
		}
	}
	return out
}
