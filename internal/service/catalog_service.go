package service

import (
	"context"
	"strconv"
	"sync"

	"scankey-catalog/internal/catalog"
	"scankey-catalog/internal/matching"
	"scankey-catalog/internal/metrics"
	"scankey-catalog/internal/model"
)

type CatalogService struct {
	store *catalog.Store
	opts  matching.Options

	engineOnce sync.Once
	engine     *matching.Engine
}

func NewCatalogService(store *catalog.Store, opts matching.Options) *CatalogService {
	return &CatalogService{
		store: store,
		opts:  opts,
	}
}

// Engine returns the engine over the loaded snapshot, loading it on first use
func (s *CatalogService) Engine(ctx context.Context) *matching.Engine {
	s.engineOnce.Do(func() {
		s.engine = matching.NewEngine(s.store.Load(ctx), s.opts)
	})
	return s.engine
}

// Match resolves OCR text against the catalog
func (s *CatalogService) Match(ctx context.Context, req model.MatchRequest) model.MatchResult {
	result := s.Engine(ctx).MatchText(req.Text, req.ManufacturerHint)
	record("match", result)
	return result
}

// Hint resolves OCR text and returns only the summary
func (s *CatalogService) Hint(ctx context.Context, req model.MatchRequest) model.CatalogHint {
	result := s.Engine(ctx).MatchText(req.Text, req.ManufacturerHint)
	record("hint", result)
	return result.Hint()
}

// Display renders a single reference as the catalog would show it
func (s *CatalogService) Display(ctx context.Context, ref string) model.DisplayResponse {
	snap := s.store.Load(ctx)
	c := matching.Canon(ref)

	return model.DisplayResponse{
		Input:     ref,
		Canon:     c,
		Display:   s.Engine(ctx).Display(c),
		InCatalog: snap.Contains(c),
		RichData:  snap.Rich(c),
	}
}

// Stats describes the loaded catalog
func (s *CatalogService) Stats(ctx context.Context) model.CatalogStatsResponse {
	return s.store.Load(ctx).Stats()
}

// CatalogSize returns the number of canonical references, zero until loaded
func (s *CatalogService) CatalogSize() int {
	if !s.store.Loaded() {
		return 0
	}
	return s.store.Load(context.Background()).Len()
}

func record(endpoint string, result model.MatchResult) {
	metrics.MatchQueriesTotal.WithLabelValues(endpoint).Inc()
	for _, h := range result.CatalogHits {
		metrics.MatchHitsTotal.WithLabelValues(string(h.MatchKind)).Inc()
	}
	metrics.MatchBestTotal.WithLabelValues(strconv.FormatBool(result.BestRefCanon != nil)).Inc()
}
