package domain

import (
	"strings"

	"github.com/couchcryptid/incident-data-etl/internal/gazetteer"
)

// Classifier buckets free-text event descriptions into the gazetteer taxonomy.
type Classifier struct {
	categories []gazetteer.Category
	fallback   string
}

// NewClassifier builds a classifier over the taxonomy of g.
func NewClassifier(g *gazetteer.Gazetteer) *Classifier {
	return &Classifier{categories: g.Categories(), fallback: g.Fallback()}
}

// Classify returns the first category with a keyword contained in raw,
// ignoring case. Categories and keywords are tried in declaration order.
// Keywords match inside longer words too.
func (c *Classifier) Classify(raw string) string {
	if raw == "" {
		return c.fallback
	}
	text := strings.ToLower(raw)
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				return cat.Name
			}
		}
	}
	return c.fallback
}
