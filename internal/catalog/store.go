package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"scankey-catalog/internal/metrics"
	"scankey-catalog/internal/model"
)

// Store builds the catalog snapshot exactly once. Concurrent first callers
// block until the single load completes and then share its result.
type Store struct {
	sources  []Source
	logger   *slog.Logger
	validate *validator.Validate

	once     sync.Once
	loaded   atomic.Bool
	snapshot *Snapshot
}

// NewStore creates a store over sources, merged in the given order
func NewStore(logger *slog.Logger, sources ...Source) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sources:  sources,
		logger:   logger,
		validate: validator.New(),
	}
}

// Load returns the snapshot, building it on first use. Missing or broken
// sources shrink the catalog but never fail the load.
func (s *Store) Load(ctx context.Context) *Snapshot {
	s.once.Do(func() {
		// Detached: the snapshot outlives the request that triggered it
		s.snapshot = s.build(context.WithoutCancel(ctx))
		s.loaded.Store(true)
	})
	return s.snapshot
}

// Loaded reports whether the snapshot has been built
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}

func (s *Store) build(ctx context.Context) *Snapshot {
	start := time.Now()

	frags := make([]Fragment, len(s.sources))
	errs := make([]error, len(s.sources))

	var g errgroup.Group
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			frags[i], errs[i] = fetch(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	b := newSnapshotBuilder()
	statuses := make([]model.SourceStatus, 0, len(s.sources))

	for i, src := range s.sources {
		status := model.SourceStatus{Name: src.Name()}

		if err := errs[i]; err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			metrics.CatalogSourcesSkipped.WithLabelValues(src.Name()).Inc()

			if errors.Is(err, ErrSourceNotFound) {
				s.logger.Debug("catalog source absent, skipping", "source", src.Name(), "error", err)
			} else {
				s.logger.Warn("catalog source unreadable, skipping", "source", src.Name(), "error", err)
			}
			continue
		}

		frag := frags[i]
		for _, key := range frag.Rejected {
			s.logger.Warn("dropping undecodable rich data", "source", src.Name(), "ref", key)
		}

		status.Loaded = true
		status.Canonicals = b.add(frag, func(key string, rd model.RichData) bool {
			if err := s.validate.Struct(rd); err != nil {
				s.logger.Warn("dropping invalid rich data", "source", src.Name(), "ref", key, "error", err)
				return false
			}
			return true
		})
		statuses = append(statuses, status)
	}

	snap := b.build(time.Now(), statuses)

	metrics.CatalogReferences.WithLabelValues("canonical").Set(float64(len(snap.canon)))
	metrics.CatalogReferences.WithLabelValues("preferred").Set(float64(len(snap.preferred)))
	metrics.CatalogReferences.WithLabelValues("rich").Set(float64(len(snap.rich)))
	metrics.CatalogLoadDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("catalog loaded",
		"canonicals", len(snap.canon),
		"preferred", len(snap.preferred),
		"rich", len(snap.rich),
		"sources", len(s.sources),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return snap
}

// fetch isolates a source so a panic inside it only skips that source
func fetch(ctx context.Context, src Source) (frag Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			frag, err = Fragment{}, fmt.Errorf("source %s panicked: %v", src.Name(), r)
		}
	}()
	return src.Fetch(ctx)
}
