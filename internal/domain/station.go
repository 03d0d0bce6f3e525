package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/couchcryptid/incident-data-etl/internal/gazetteer"
)

// MatchThreshold is the minimum similarity percentage for a fuzzy match.
const MatchThreshold = 80

// ResolveMethod records how a station name was resolved.
type ResolveMethod string

const (
	MethodEmpty   ResolveMethod = "empty"
	MethodAlias   ResolveMethod = "alias"
	MethodFuzzy   ResolveMethod = "fuzzy"
	MethodLiteral ResolveMethod = "literal"
)

// ResolveMethods lists every method, for metrics label pre-registration.
var ResolveMethods = []ResolveMethod{MethodEmpty, MethodAlias, MethodFuzzy, MethodLiteral}

// Resolution is the outcome of resolving one raw station string.
// Score is the similarity of the best candidate in percent; 100 for alias hits.
type Resolution struct {
	Name   string
	Method ResolveMethod
	Score  float64
}

// StationResolver maps free-text station names to canonical ones.
// Implementations must be safe for concurrent use.
type StationResolver interface {
	Resolve(raw string) Resolution
}

// Resolver is the gazetteer-backed StationResolver.
type Resolver struct {
	gaz       *gazetteer.Gazetteer
	canonical []string // station names in gazetteer order
	folded    []string // lower-cased canonical names
}

// NewResolver builds a resolver over the stations of g.
func NewResolver(g *gazetteer.Gazetteer) *Resolver {
	stations := g.Stations()
	r := &Resolver{
		gaz:       g,
		canonical: make([]string, len(stations)),
		folded:    make([]string, len(stations)),
	}
	for i, s := range stations {
		r.canonical[i] = s.Name
		r.folded[i] = strings.ToLower(s.Name)
	}
	return r
}

// CleanStationKey lower-cases raw and strips "ps", "." and surrounding space.
// Alias keys are indexed under the same form.
func CleanStationKey(raw string) string {
	return gazetteer.CleanKey(raw)
}

// Resolve returns the canonical station for raw. It never fails: input it
// cannot place comes back title-cased, or as gazetteer.Unknown when empty.
func (r *Resolver) Resolve(raw string) Resolution {
	if strings.TrimSpace(raw) == "" {
		return Resolution{Name: gazetteer.Unknown, Method: MethodEmpty}
	}

	key := CleanStationKey(raw)
	if target, ok := r.gaz.Alias(key); ok {
		return Resolution{Name: target, Method: MethodAlias, Score: 100}
	}

	// cleaning can leave nothing, e.g. a bare "PS"
	if key == "" {
		return Resolution{Name: key, Method: MethodLiteral}
	}

	best, bestDist := 0, -1
	for i, name := range r.folded {
		d := levenshtein.ComputeDistance(key, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	longest := max(utf8.RuneCountInString(key), utf8.RuneCountInString(r.folded[best]))
	score := (1 - float64(bestDist)/float64(longest)) * 100

	// integer form of score >= MatchThreshold
	if 100*(longest-bestDist) >= MatchThreshold*longest {
		return Resolution{Name: r.canonical[best], Method: MethodFuzzy, Score: score}
	}
	return Resolution{Name: titleCase(key), Method: MethodLiteral, Score: score}
}

// titleCase upper-cases the first letter of each word. A Caser is stateful so
// each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
