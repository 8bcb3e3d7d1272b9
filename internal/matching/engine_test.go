package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scankey-catalog/internal/model"
)

func TestMatchTextConfusionEndToEnd(t *testing.T) {
	engine := NewEngine(newFakeCatalog("TE8I"), DefaultOptions())

	result := engine.MatchText("code TEBI please", nil)

	assert.Equal(t, []string{"CODE", "TEBI", "PLEASE"}, result.TokensRaw)
	require.Len(t, result.CatalogHits, 1)

	h := result.CatalogHits[0]
	assert.Equal(t, "TEBI", h.Raw)
	assert.Equal(t, "TE8I", h.Canon)
	assert.Equal(t, "TE-8I", h.Display)
	assert.Equal(t, 1, h.Index)
	assert.Equal(t, model.MatchConfusion, h.MatchKind)
	assert.Equal(t, 1.0, h.Score)

	require.NotNil(t, result.BestRef)
	require.NotNil(t, result.BestRefCanon)
	assert.Equal(t, "TE-8I", *result.BestRef)
	assert.Equal(t, "TE8I", *result.BestRefCanon)
	assert.Equal(t, 1, result.CatalogHitsCount)
	assert.Equal(t, 1, result.CatalogUniqueCount)
}

func TestMatchTextExactWins(t *testing.T) {
	engine := NewEngine(newFakeCatalog("TE8I", "ABC"), DefaultOptions())

	result := engine.MatchText("TEBI TEBI TEBI ABC", nil)

	assert.Equal(t, 4, result.CatalogHitsCount)
	assert.Equal(t, 2, result.CatalogUniqueCount)
	require.NotNil(t, result.BestRefCanon)
	assert.Equal(t, "ABC", *result.BestRefCanon)
}

func TestMatchTextManufacturerHint(t *testing.T) {
	catalog := newFakeCatalog().
		withBrand("YA300D", "YALE").
		withBrand("TE8I", "Acme")
	engine := NewEngine(catalog, DefaultOptions())

	tests := []struct {
		name string
		hint *model.ManufacturerHint
		want string
	}{
		{"no hint", nil, "YA300D"},
		{"trusted hint", &model.ManufacturerHint{Found: true, Name: strPtr("ACME"), Confidence: 0.9}, "TE8I"},
		{"threshold is inclusive", &model.ManufacturerHint{Found: true, Name: strPtr("acme"), Confidence: 0.85}, "TE8I"},
		{"low confidence", &model.ManufacturerHint{Found: true, Name: strPtr("ACME"), Confidence: 0.8}, "YA300D"},
		{"not found", &model.ManufacturerHint{Found: false, Name: strPtr("ACME"), Confidence: 0.99}, "YA300D"},
		{"no name", &model.ManufacturerHint{Found: true, Confidence: 0.99}, "YA300D"},
		{"other brand", &model.ManufacturerHint{Found: true, Name: strPtr("TESA"), Confidence: 0.99}, "YA300D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.MatchText("YA300D TE8I", tt.hint)
			require.NotNil(t, result.BestRefCanon)
			assert.Equal(t, tt.want, *result.BestRefCanon)
		})
	}

	boosted := engine.MatchText("YA300D TE8I", &model.ManufacturerHint{Found: true, Name: strPtr("ACME"), Confidence: 0.9})
	require.Len(t, boosted.CatalogHits, 2)
	assert.Equal(t, 1.0, boosted.CatalogHits[0].Score)
	assert.Equal(t, 1.5, boosted.CatalogHits[1].Score)
	assert.Equal(t, "Acme", boosted.BestRefRichData.Brand)
}

func TestMatchTextDegenerateInput(t *testing.T) {
	engines := map[string]*Engine{
		"empty catalog": NewEngine(newFakeCatalog(), DefaultOptions()),
		"nil catalog":   NewEngine(nil, DefaultOptions()),
		"with catalog":  NewEngine(newFakeCatalog("TE8I"), DefaultOptions()),
	}

	for name, engine := range engines {
		for _, text := range []string{"", "   ", "!!! ### ...", "—_—"} {
			result := engine.MatchText(text, nil)

			assert.NotNil(t, result.TokensRaw, name)
			assert.NotNil(t, result.CatalogHits, name)
			assert.NotNil(t, result.CatalogHitsUnique, name)
			assert.Zero(t, result.CatalogHitsCount, name)
			assert.Nil(t, result.BestRef, name)
			assert.Nil(t, result.BestRefCanon, name)
			assert.True(t, result.BestRefRichData.IsZero(), name)
		}
	}
}

func TestMatchResultJSONShape(t *testing.T) {
	engine := NewEngine(newFakeCatalog(), DefaultOptions())

	data, err := json.Marshal(engine.MatchText("", nil))
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.JSONEq(t, `[]`, string(fields["tokens_raw"]))
	assert.JSONEq(t, `[]`, string(fields["catalog_hits"]))
	assert.JSONEq(t, `[]`, string(fields["catalog_hits_unique"]))
	assert.JSONEq(t, `0`, string(fields["catalog_hits_count"]))
	assert.JSONEq(t, `0`, string(fields["catalog_unique_count"]))
	assert.JSONEq(t, `null`, string(fields["best_ref"]))
	assert.JSONEq(t, `null`, string(fields["best_ref_canon"]))
	assert.JSONEq(t, `{}`, string(fields["best_ref_rich_data"]))
}

func TestMatchTokensBestIsAHit(t *testing.T) {
	engine := NewEngine(newFakeCatalog("TE8I", "U5D", "TOK83D"), DefaultOptions())

	for _, text := range []string{"TE8I U5D", "U5D TOK-83D U5D", "TEBI U5O", "US0 TOKB3D"} {
		result := engine.MatchText(text, nil)
		if result.BestRefCanon == nil {
			continue
		}
		found := false
		for _, h := range result.CatalogHits {
			if h.Canon == *result.BestRefCanon {
				found = true
			}
		}
		assert.True(t, found, "best of %q must be a hit", text)
	}
}

func TestMatchResultHint(t *testing.T) {
	engine := NewEngine(newFakeCatalog("TE8I", "U5D"), DefaultOptions())

	hint := engine.MatchText("TE8I U5D TE8I", nil).Hint()

	require.NotNil(t, hint.BestRef)
	assert.Equal(t, "TE-8I", *hint.BestRef)
	assert.Equal(t, []string{"TE-8I", "U5D"}, hint.UniqueHits)
	assert.Equal(t, 3, hint.HitsCount)
}
