package catalog

import (
	"sort"
	"strings"
	"time"

	"scankey-catalog/internal/matching"
	"scankey-catalog/internal/model"
)

var _ matching.Catalog = (*Snapshot)(nil)

// Snapshot is an immutable catalog. All methods are safe for concurrent use
// and tolerate a nil receiver, which behaves as an empty catalog.
type Snapshot struct {
	canon     map[string]struct{}
	preferred map[string]string
	rich      map[string]model.RichData
	loadedAt  time.Time
	sources   []model.SourceStatus
}

// NewSnapshot builds a snapshot directly from in-memory data
func NewSnapshot(canonicals []string, variants map[string][]string, rich map[string]model.RichData) *Snapshot {
	b := newSnapshotBuilder()
	b.add(Fragment{Canonicals: canonicals, Variants: variants}, nil)
	if len(rich) > 0 {
		b.add(Fragment{Rich: rich}, nil)
	}
	return b.build(time.Now(), nil)
}

// Contains reports whether c is a canonical reference
func (s *Snapshot) Contains(c string) bool {
	if s == nil {
		return false
	}
	_, ok := s.canon[c]
	return ok
}

// Preferred returns the chosen display variant for c
func (s *Snapshot) Preferred(c string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.preferred[c]
	return v, ok
}

// Rich returns the metadata of c, or the zero record
func (s *Snapshot) Rich(c string) model.RichData {
	if s == nil {
		return model.RichData{}
	}
	return s.rich[c]
}

// Len returns the number of canonical references
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.canon)
}

// Stats describes the snapshot
func (s *Snapshot) Stats() model.CatalogStatsResponse {
	if s == nil {
		return model.CatalogStatsResponse{Sources: []model.SourceStatus{}}
	}
	sources := make([]model.SourceStatus, len(s.sources))
	copy(sources, s.sources)
	return model.CatalogStatsResponse{
		Canonicals: len(s.canon),
		Preferred:  len(s.preferred),
		RichData:   len(s.rich),
		LoadedAt:   s.loadedAt,
		Sources:    sources,
	}
}

type snapshotBuilder struct {
	canon    map[string]struct{}
	variants map[string][]string
	rich     map[string]model.RichData
}

func newSnapshotBuilder() *snapshotBuilder {
	return &snapshotBuilder{
		canon:    make(map[string]struct{}),
		variants: make(map[string][]string),
		rich:     make(map[string]model.RichData),
	}
}

// add merges a fragment. Rich data from an earlier fragment wins; keep
// decides per entry whether its attributes are accepted.
func (b *snapshotBuilder) add(frag Fragment, keep func(key string, rd model.RichData) bool) int {
	before := len(b.canon)

	for _, c := range frag.Canonicals {
		if k := matching.Canon(c); k != "" {
			b.canon[k] = struct{}{}
		}
	}

	for _, k := range sortedKeys(frag.Variants) {
		if key := matching.Canon(k); key != "" {
			b.variants[key] = append(b.variants[key], frag.Variants[k]...)
		}
	}

	for _, k := range sortedKeys(frag.Rich) {
		rd := frag.Rich[k]
		key := matching.Canon(k)
		if key == "" {
			continue
		}
		b.canon[key] = struct{}{}
		if _, ok := b.rich[key]; ok {
			continue
		}
		if keep != nil && !keep(key, rd) {
			continue
		}
		b.rich[key] = rd
	}

	return len(b.canon) - before
}

func (b *snapshotBuilder) build(loadedAt time.Time, sources []model.SourceStatus) *Snapshot {
	preferred := make(map[string]string, len(b.variants))
	for k, vs := range b.variants {
		if v := preferredVariant(vs); v != "" {
			preferred[k] = v
		}
	}

	if sources == nil {
		sources = []model.SourceStatus{}
	}

	return &Snapshot{
		canon:     b.canon,
		preferred: preferred,
		rich:      b.rich,
		loadedAt:  loadedAt,
		sources:   sources,
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// preferredVariant picks hyphenated spellings first, then the shortest,
// keeping source order among equals
func preferredVariant(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	sorted := make([]string, len(vs))
	copy(sorted, vs)
	sort.SliceStable(sorted, func(i, j int) bool {
		hi, hj := strings.Contains(sorted[i], "-"), strings.Contains(sorted[j], "-")
		if hi != hj {
			return hi
		}
		return len(sorted[i]) < len(sorted[j])
	})
	return sorted[0]
}
