package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"scankey-catalog/internal/model"
)

// Kind is the document shape a blob source holds
type Kind int

const (
	// CanonList is a JSON array of canonical codes
	CanonList Kind = iota
	// VariantsMap maps a canonical code to its textual variants
	VariantsMap
	// RichMap maps a canonical code to its attributes, optionally wrapped
	// in a refs document
	RichMap
)

func (k Kind) String() string {
	switch k {
	case CanonList:
		return "canon_list"
	case VariantsMap:
		return "variants_map"
	case RichMap:
		return "rich_map"
	default:
		return "unknown"
	}
}

// Fragment is what a single source contributes to the catalog
type Fragment struct {
	Canonicals []string
	Variants   map[string][]string
	Rich       map[string]model.RichData
	// Rejected lists rich keys whose attributes could not be decoded
	Rejected []string
}

// Source is one optional provider of catalog data
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Fragment, error)
}

// BlobSource decodes one document read through a BlobReader
type BlobSource struct {
	name   string
	kind   Kind
	reader BlobReader
	key    string
}

// NewBlobSource creates a source for the document at key
func NewBlobSource(name string, kind Kind, reader BlobReader, key string) *BlobSource {
	return &BlobSource{name: name, kind: kind, reader: reader, key: key}
}

func (s *BlobSource) Name() string { return s.name }

// Fetch reads and decodes the document
func (s *BlobSource) Fetch(ctx context.Context) (Fragment, error) {
	data, err := s.reader.ReadBlob(ctx, s.key)
	if err != nil {
		return Fragment{}, err
	}

	var frag Fragment
	switch s.kind {
	case CanonList:
		frag.Canonicals, err = parseCanonList(data)
	case VariantsMap:
		frag.Variants, err = parseVariants(data)
	case RichMap:
		frag, err = parseRich(data)
	default:
		err = fmt.Errorf("unsupported source kind %d", s.kind)
	}
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to parse %s %s: %w", s.kind, s.key, err)
	}
	return frag, nil
}

func parseCanonList(data []byte) ([]string, error) {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := scalarString(it); ok {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out, nil
}

func parseVariants(data []byte) (map[string][]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(raw))
	for k, v := range raw {
		var items []any
		if err := json.Unmarshal(v, &items); err != nil || len(items) == 0 {
			continue
		}
		vs := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := scalarString(it); ok && strings.TrimSpace(s) != "" {
				vs = append(vs, strings.ToUpper(strings.TrimSpace(s)))
			}
		}
		if len(vs) > 0 {
			out[strings.ToUpper(k)] = vs
		}
	}
	return out, nil
}

func parseRich(data []byte) (Fragment, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Fragment{}, err
	}

	// refs document produced by catalog-builder
	if refs, ok := raw["refs"]; ok {
		if _, hasSchema := raw["schema"]; hasSchema {
			raw = nil
			if err := json.Unmarshal(refs, &raw); err != nil {
				return Fragment{}, fmt.Errorf("invalid refs: %w", err)
			}
		}
	}

	frag := Fragment{
		Canonicals: make([]string, 0, len(raw)),
		Rich:       make(map[string]model.RichData, len(raw)),
	}
	for k, v := range raw {
		frag.Canonicals = append(frag.Canonicals, k)

		var rd model.RichData
		if err := json.Unmarshal(v, &rd); err != nil {
			frag.Rejected = append(frag.Rejected, k)
			continue
		}
		frag.Rich[k] = rd
	}
	return frag, nil
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Layout names the documents of a catalog deployment.
// Empty entries produce no source.
type Layout struct {
	CanonOverride string
	CanonClean    string
	CanonFull     string
	Variants      string
	RichDB        string
}

// Sources returns blob sources for the layout in merge order
func (l Layout) Sources(reader BlobReader) []Source {
	var sources []Source
	add := func(name, key string, kind Kind) {
		if strings.TrimSpace(key) == "" {
			return
		}
		sources = append(sources, NewBlobSource(name, kind, reader, key))
	}

	add("canon_override", l.CanonOverride, CanonList)
	add("canon_clean", l.CanonClean, CanonList)
	add("canon_full", l.CanonFull, CanonList)
	add("rich_db", l.RichDB, RichMap)
	add("variants", l.Variants, VariantsMap)

	return sources
}
