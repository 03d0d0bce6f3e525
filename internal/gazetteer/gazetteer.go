// Package gazetteer holds the static reference data used to normalize incident
// reports: the police station → subdivision hierarchy, the alias table for
// station codes that appear in the source sheet, and the ordered event-type
// taxonomy.
//
// A Gazetteer is immutable after construction and safe for concurrent use.
package gazetteer

import (
	"errors"
	"fmt"
	"strings"
)

// Unknown is the station/subdivision placeholder for unresolvable input.
const Unknown = "Unknown"

// Station is one canonical police station and the subdivision it reports to.
type Station struct {
	Name        string `json:"name" toml:"name" yaml:"name"`
	Subdivision string `json:"subdivision" toml:"subdivision" yaml:"subdivision"`
}

// Category is one event-type bucket and the keywords that select it.
// Keywords are matched as case-insensitive substrings in declaration order.
type Category struct {
	Name     string   `json:"name" toml:"name" yaml:"name"`
	Keywords []string `json:"keywords" toml:"keywords" yaml:"keywords"`
}

// Gazetteer is the validated, indexed form of the reference data.
type Gazetteer struct {
	stations   []Station
	aliases    map[string]string // keyed by CleanKey
	declared   map[string]string // lower-cased keys as declared, for Export
	categories []Category
	fallback   string

	subdivisions map[string]string
}

// New validates and indexes the given reference data. Station and category
// order is preserved; it decides fuzzy-match ties and classification priority.
func New(stations []Station, aliases map[string]string, categories []Category, fallback string) (*Gazetteer, error) {
	g := &Gazetteer{
		stations:     append([]Station(nil), stations...),
		aliases:      make(map[string]string, len(aliases)),
		declared:     make(map[string]string, len(aliases)),
		categories:   make([]Category, 0, len(categories)),
		fallback:     fallback,
		subdivisions: make(map[string]string, len(stations)),
	}

	if len(stations) == 0 {
		return nil, errors.New("gazetteer: no stations")
	}
	for _, s := range stations {
		if strings.TrimSpace(s.Name) == "" {
			return nil, errors.New("gazetteer: station with empty name")
		}
		if strings.TrimSpace(s.Subdivision) == "" {
			return nil, fmt.Errorf("gazetteer: station %q has no subdivision", s.Name)
		}
		if _, dup := g.subdivisions[s.Name]; dup {
			return nil, fmt.Errorf("gazetteer: duplicate station %q", s.Name)
		}
		g.subdivisions[s.Name] = s.Subdivision
	}

	for alias, target := range aliases {
		if _, ok := g.subdivisions[target]; !ok {
			return nil, fmt.Errorf("gazetteer: alias %q points at unknown station %q", alias, target)
		}
		key := CleanKey(alias)
		if key == "" {
			return nil, fmt.Errorf("gazetteer: alias %q is empty once cleaned", alias)
		}
		if prev, dup := g.aliases[key]; dup && prev != target {
			return nil, fmt.Errorf("gazetteer: alias %q collides with another alias on key %q (%q vs %q)", alias, key, prev, target)
		}
		g.aliases[key] = target
		g.declared[strings.ToLower(alias)] = target
	}

	if fallback == "" {
		return nil, errors.New("gazetteer: empty fallback category")
	}
	for _, c := range categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, errors.New("gazetteer: category with empty name")
		}
		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw == "" {
				continue
			}
			kws = append(kws, strings.ToLower(kw))
		}
		g.categories = append(g.categories, Category{Name: c.Name, Keywords: kws})
	}

	return g, nil
}

// Stations returns the canonical stations in declaration order.
func (g *Gazetteer) Stations() []Station {
	return append([]Station(nil), g.stations...)
}

// Subdivision returns the subdivision of a canonical station name.
func (g *Gazetteer) Subdivision(station string) (string, bool) {
	sub, ok := g.subdivisions[station]
	return sub, ok
}

// CleanKey is the normalized form station strings are matched on: lower-cased,
// with every "ps" and "." removed and surrounding space trimmed.
func CleanKey(raw string) string {
	key := strings.ToLower(raw)
	key = strings.ReplaceAll(key, "ps", "")
	key = strings.ReplaceAll(key, ".", "")
	return strings.TrimSpace(key)
}

// Alias looks up a key already passed through CleanKey.
func (g *Gazetteer) Alias(key string) (string, bool) {
	target, ok := g.aliases[key]
	return target, ok
}

// Aliases returns a copy of the alias table as declared, with lower-cased keys.
func (g *Gazetteer) Aliases() map[string]string {
	out := make(map[string]string, len(g.declared))
	for k, v := range g.declared {
		out[k] = v
	}
	return out
}

// Categories returns the taxonomy in priority order. Keywords are lower-cased.
func (g *Gazetteer) Categories() []Category {
	out := make([]Category, len(g.categories))
	for i, c := range g.categories {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// Fallback is the catch-all category for unclassified descriptions.
func (g *Gazetteer) Fallback() string {
	return g.fallback
}

// SubdivisionNames returns the distinct subdivisions in first-seen order.
func (g *Gazetteer) SubdivisionNames() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range g.stations {
		if _, ok := seen[s.Subdivision]; ok {
			continue
		}
		seen[s.Subdivision] = struct{}{}
		out = append(out, s.Subdivision)
	}
	return out
}
