package model

import "time"

// RichData holds optional attributes known for a canonical reference.
// The zero value is the "no metadata" record and serializes as {}.
type RichData struct {
	Ref      string         `json:"ref,omitempty" validate:"omitempty,max=64"`
	Family   string         `json:"family,omitempty" validate:"omitempty,max=64"`
	Type     string         `json:"type,omitempty" validate:"omitempty,max=64"`
	Brand    string         `json:"brand,omitempty" validate:"omitempty,max=128"`
	Model    string         `json:"model,omitempty" validate:"omitempty,max=128"`
	Priority int            `json:"priority,omitempty" validate:"gte=0"`
	Tags     []string       `json:"tags,omitempty" validate:"dive,required"`
	Notes    string         `json:"notes,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// IsZero reports whether no attribute is set
func (r RichData) IsZero() bool {
	return r.Ref == "" && r.Family == "" && r.Type == "" && r.Brand == "" &&
		r.Model == "" && r.Priority == 0 && len(r.Tags) == 0 && r.Notes == "" && len(r.Extra) == 0
}

// RefsSchema identifies the refs document written by catalog-builder
const RefsSchema = "scankey.catalog_refs.v1"

// RefsDocument is the wrapped rich metadata file
type RefsDocument struct {
	Schema      string              `json:"schema"`
	GeneratedAt time.Time           `json:"generated_at"`
	Seed        string              `json:"seed,omitempty"`
	RefsCount   int                 `json:"refs_count"`
	Refs        map[string]RichData `json:"refs"`
}
