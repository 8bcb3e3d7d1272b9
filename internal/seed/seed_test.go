package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scankey-catalog/internal/model"
)

const sampleSeed = "\ufeffref,family,type_guess,brand_guess,model_guess,priority,tags,notes\n" +
	"TE-8I,te,,jma,,3,\"flat, yale\",common\n" +
	"u5d,,blank,,,,,\n"

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleSeed))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Line:     2,
		Ref:      "TE8I",
		RawRef:   "TE-8I",
		Family:   "TE",
		Brand:    "JMA",
		Priority: 3,
		Tags:     []string{"FLAT", "YALE"},
		Notes:    "common",
	}, rows[0])

	assert.Equal(t, "U5D", rows[1].Ref)
	assert.Equal(t, "BLANK", rows[1].Type)
	assert.Equal(t, 3, rows[1].Line)
	assert.Nil(t, rows[1].Tags)
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "seed is empty"},
		{"no ref column", "code,brand\nTE8I,JMA\n", "no ref column"},
		{"empty ref", "ref\nTE8I\n--\n", "empty ref on line 3"},
		{"duplicate", "ref\nTE8I\nte-8i\n", "duplicate seed ref TE8I on line 3 (first on line 2)"},
		{"bad priority", "ref,priority\nTE8I,high\n", `invalid priority "high" on line 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildMergesExisting(t *testing.T) {
	rows := []Row{
		{Ref: "TE8I", Brand: "JMA", Tags: []string{"YALE"}},
		{Ref: "U5D"},
	}
	existing := map[string]model.RichData{
		"TE8I": {
			Brand:    "OLD",
			Family:   "TE",
			Priority: 7,
			Tags:     []string{"FLAT"},
			Notes:    "kept",
			Extra:    map[string]any{"hits": 4.0},
		},
	}
	now := time.Date(2026, 3, 1, 10, 30, 15, 500, time.FixedZone("X", 3600))

	doc := Build(rows, existing, "seed.csv", now)

	assert.Equal(t, model.RefsSchema, doc.Schema)
	assert.Equal(t, "seed.csv", doc.Seed)
	assert.Equal(t, 2, doc.RefsCount)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC), doc.GeneratedAt)

	assert.Equal(t, model.RichData{
		Ref:      "TE8I",
		Family:   "TE",
		Type:     "KEY",
		Brand:    "JMA",
		Model:    "TE8I",
		Priority: 7,
		Tags:     []string{"FLAT", "YALE"},
		Notes:    "kept",
		Extra:    map[string]any{"hits": 4.0},
	}, doc.Refs["TE8I"])

	assert.Equal(t, model.RichData{Ref: "U5D", Type: "KEY", Model: "U5D"}, doc.Refs["U5D"])
}

func TestCanonList(t *testing.T) {
	doc := model.RefsDocument{Refs: map[string]model.RichData{"U5D": {}, "TE8I": {}, "AB1": {}}}

	assert.Equal(t, []string{"AB1", "TE8I", "U5D"}, CanonList(doc))
	assert.Equal(t, []string{}, CanonList(model.RefsDocument{}))
}

func TestVariants(t *testing.T) {
	rows := []Row{
		{Ref: "TE8I", RawRef: "te8i"},
		{Ref: "YA300D", RawRef: "YA-300D"},
		{Ref: "U5D", RawRef: "U5D"},
	}

	assert.Equal(t, map[string][]string{
		"TE8I":   {"TE8I", "TE-8I"},
		"YA300D": {"YA-300D"},
		"U5D":    {"U5D"},
	}, Variants(rows))
}
