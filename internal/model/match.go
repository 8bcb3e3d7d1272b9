package model

// MatchKind tells how a token reached the catalog
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchConfusion MatchKind = "confusion"
)

// ManufacturerHint is the brand signal coming from the classifier
type ManufacturerHint struct {
	Found      bool    `json:"found"`
	Name       *string `json:"name"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
}

// MatchHit is one token resolved to a canonical reference
type MatchHit struct {
	Raw       string    `json:"raw"`
	Canon     string    `json:"canon"`
	Display   string    `json:"display"`
	Index     int       `json:"index"`
	MatchKind MatchKind `json:"match_kind"`
	RichData  RichData  `json:"rich_data"`
	Score     float64   `json:"score"`
}

// MatchResult is the full outcome of one query
type MatchResult struct {
	TokensRaw          []string   `json:"tokens_raw"`
	CatalogHits        []MatchHit `json:"catalog_hits"`
	CatalogHitsUnique  []MatchHit `json:"catalog_hits_unique"`
	CatalogHitsCount   int        `json:"catalog_hits_count"`
	CatalogUniqueCount int        `json:"catalog_unique_count"`
	BestRef            *string    `json:"best_ref"`
	BestRefCanon       *string    `json:"best_ref_canon"`
	BestRefRichData    RichData   `json:"best_ref_rich_data"`
}

// CatalogHint is the compact summary attached to OCR output
type CatalogHint struct {
	BestRef      *string  `json:"best_ref"`
	BestRefCanon *string  `json:"best_ref_canon"`
	UniqueHits   []string `json:"unique_hits"`
	HitsCount    int      `json:"hits_count"`
}

// Hint summarizes the result
func (r MatchResult) Hint() CatalogHint {
	unique := make([]string, 0, len(r.CatalogHitsUnique))
	for _, h := range r.CatalogHitsUnique {
		unique = append(unique, h.Display)
	}
	return CatalogHint{
		BestRef:      r.BestRef,
		BestRefCanon: r.BestRefCanon,
		UniqueHits:   unique,
		HitsCount:    r.CatalogHitsCount,
	}
}
