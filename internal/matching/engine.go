package matching

import "scankey-catalog/internal/model"

// Options tunes the engine
type Options struct {
	MaxFlips          int
	VariantCap        int
	HintMinConfidence float64
}

// DefaultOptions returns the production tuning
func DefaultOptions() Options {
	return Options{
		MaxFlips:          DefaultMaxFlips,
		VariantCap:        DefaultVariantCap,
		HintMinConfidence: DefaultHintMinConfidence,
	}
}

// Engine turns OCR text into a catalog match result. It never fails: bad
// or empty input yields an empty, well-formed result.
type Engine struct {
	catalog Catalog
	matcher *Matcher
}

// NewEngine builds an engine over a loaded catalog
func NewEngine(catalog Catalog, opts Options) *Engine {
	if catalog == nil {
		catalog = emptyCatalog{}
	}
	return &Engine{
		catalog: catalog,
		matcher: NewMatcher(catalog, NewExpander(opts.MaxFlips, opts.VariantCap), opts.HintMinConfidence),
	}
}

// MatchText extracts tokens from text and matches them
func (e *Engine) MatchText(text string, hint *model.ManufacturerHint) model.MatchResult {
	return e.MatchTokens(ExtractTokens(text), hint)
}

// MatchTokens matches already extracted tokens
func (e *Engine) MatchTokens(tokens []string, hint *model.ManufacturerHint) model.MatchResult {
	if tokens == nil {
		tokens = []string{}
	}

	hits := e.matcher.Match(tokens, hint)
	unique, best := Rank(hits)

	result := model.MatchResult{
		TokensRaw:          tokens,
		CatalogHits:        hits,
		CatalogHitsUnique:  unique,
		CatalogHitsCount:   len(hits),
		CatalogUniqueCount: len(unique),
	}

	if best != "" {
		display := e.Display(best)
		result.BestRef = &display
		result.BestRefCanon = &best
		result.BestRefRichData = e.catalog.Rich(best)
	}

	return result
}

// Display renders a canonical reference for humans
func (e *Engine) Display(c string) string {
	return Display(e.catalog, c)
}
