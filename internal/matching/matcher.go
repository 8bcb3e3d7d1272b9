package matching

import (
	"strings"

	"scankey-catalog/internal/model"
)

const (
	baseScore                = 1.0
	hintBoost                = 0.5
	DefaultHintMinConfidence = 0.85
)

// Catalog is the read-only view the engine matches against
type Catalog interface {
	Contains(canon string) bool
	Preferred(canon string) (string, bool)
	Rich(canon string) model.RichData
}

// Matcher resolves tokens to catalog references
type Matcher struct {
	catalog           Catalog
	expander          Expander
	hintMinConfidence float64
}

// NewMatcher creates a matcher over catalog
func NewMatcher(catalog Catalog, expander Expander, hintMinConfidence float64) *Matcher {
	if catalog == nil {
		catalog = emptyCatalog{}
	}
	return &Matcher{
		catalog:           catalog,
		expander:          expander,
		hintMinConfidence: hintMinConfidence,
	}
}

// Match returns one hit per token that reaches the catalog, in token order.
// An exact key wins; otherwise the first confusion variant present is used.
func (m *Matcher) Match(tokens []string, hint *model.ManufacturerHint) []model.MatchHit {
	hits := []model.MatchHit{}
	boostBrand := m.boostBrand(hint)

	for idx, tok := range tokens {
		c := Canon(tok)
		if c == "" {
			continue
		}

		hit, kind := m.resolve(c)
		if hit == "" {
			continue
		}

		rich := m.catalog.Rich(hit)
		score := baseScore
		if boostBrand != "" && rich.Brand != "" && strings.EqualFold(rich.Brand, boostBrand) {
			score += hintBoost
		}

		hits = append(hits, model.MatchHit{
			Raw:       tok,
			Canon:     hit,
			Display:   Display(m.catalog, hit),
			Index:     idx,
			MatchKind: kind,
			RichData:  rich,
			Score:     score,
		})
	}

	return hits
}

func (m *Matcher) resolve(c string) (string, model.MatchKind) {
	if m.catalog.Contains(c) {
		return c, model.MatchExact
	}
	for _, v := range m.expander.Expand(c) {
		if m.catalog.Contains(v) {
			return v, model.MatchConfusion
		}
	}
	return "", ""
}

// boostBrand returns the hinted brand when the hint is trusted enough
func (m *Matcher) boostBrand(hint *model.ManufacturerHint) string {
	if hint == nil || !hint.Found || hint.Name == nil {
		return ""
	}
	if hint.Confidence < m.hintMinConfidence {
		return ""
	}
	return strings.TrimSpace(*hint.Name)
}

type emptyCatalog struct{}

func (emptyCatalog) Contains(string) bool            { return false }
func (emptyCatalog) Preferred(string) (string, bool) { return "", false }
func (emptyCatalog) Rich(string) model.RichData      { return model.RichData{} }
