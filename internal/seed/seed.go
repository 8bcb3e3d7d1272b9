// Package seed turns a hand-maintained CSV of references into catalog documents.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"scankey-catalog/internal/matching"
	"scankey-catalog/internal/model"
)

const defaultType = "KEY"

// Row is one seed line after normalization
type Row struct {
	Line     int
	Ref      string
	RawRef   string
	Family   string
	Type     string
	Brand    string
	Model    string
	Priority int
	Tags     []string
	Notes    string
}

// ParseCSV reads seed rows. The header must contain a "ref" column; the
// optional columns are family, type_guess, brand_guess, model_guess,
// priority, tags (comma separated) and notes.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("seed is empty")
		}
		return nil, fmt.Errorf("failed to read seed header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols["ref"]; !ok {
		return nil, fmt.Errorf("seed header has no ref column")
	}

	get := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	seen := make(map[string]int)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read seed line %d: %w", line, err)
		}

		raw := get(rec, "ref")
		ref := matching.Canon(raw)
		if ref == "" {
			return nil, fmt.Errorf("invalid seed: empty ref on line %d", line)
		}
		if prev, dup := seen[ref]; dup {
			return nil, fmt.Errorf("duplicate seed ref %s on line %d (first on line %d)", ref, line, prev)
		}
		seen[ref] = line

		priority := 0
		if p := get(rec, "priority"); p != "" {
			priority, err = strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("invalid priority %q on line %d", p, line)
			}
		}

		rows = append(rows, Row{
			Line:     line,
			Ref:      ref,
			RawRef:   raw,
			Family:   strings.ToUpper(get(rec, "family")),
			Type:     strings.ToUpper(get(rec, "type_guess")),
			Brand:    strings.ToUpper(get(rec, "brand_guess")),
			Model:    strings.ToUpper(get(rec, "model_guess")),
			Priority: priority,
			Tags:     splitTags(get(rec, "tags")),
			Notes:    get(rec, "notes"),
		})
	}

	return rows, nil
}

// Build assembles the refs document. Fields missing from a row are taken
// from existing, so enriched data survives a rebuild.
func Build(rows []Row, existing map[string]model.RichData, seedName string, now time.Time) model.RefsDocument {
	refs := make(map[string]model.RichData, len(rows))

	for _, row := range rows {
		prev := existing[row.Ref]

		refs[row.Ref] = model.RichData{
			Ref:      row.Ref,
			Family:   firstNonEmpty(row.Family, prev.Family),
			Type:     firstNonEmpty(row.Type, prev.Type, defaultType),
			Brand:    firstNonEmpty(row.Brand, prev.Brand),
			Model:    firstNonEmpty(row.Model, prev.Model, row.Ref),
			Priority: firstNonZero(row.Priority, prev.Priority),
			Tags:     unionTags(prev.Tags, row.Tags),
			Notes:    firstNonEmpty(row.Notes, prev.Notes),
			Extra:    prev.Extra,
		}
	}

	return model.RefsDocument{
		Schema:      model.RefsSchema,
		GeneratedAt: now.UTC().Truncate(time.Second),
		Seed:        seedName,
		RefsCount:   len(refs),
		Refs:        refs,
	}
}

// CanonList returns the sorted canonical references of doc
func CanonList(doc model.RefsDocument) []string {
	out := make([]string, 0, len(doc.Refs))
	for ref := range doc.Refs {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// Variants groups the spellings seen in the seed by canonical reference.
// The hyphenated display form is added so every entry has one.
func Variants(rows []Row) map[string][]string {
	out := make(map[string][]string, len(rows))
	for _, row := range rows {
		var vs []string
		add := func(v string) {
			v = strings.ToUpper(strings.TrimSpace(v))
			if v == "" {
				return
			}
			for _, x := range vs {
				if x == v {
					return
				}
			}
			vs = append(vs, v)
		}
		add(row.RawRef)
		add(matching.PrettyRef(row.Ref))
		out[row.Ref] = vs
	}
	return out
}

func splitTags(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func unionTags(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		set[t] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
