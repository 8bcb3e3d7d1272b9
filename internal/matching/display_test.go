package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyRef(t *testing.T) {
	tests := map[string]string{
		"TE8I":   "TE-8I",
		"TOK83D": "TOK-83D",
		"U5D":    "U5D",
		"YA300D": "YA-300D",
		"ABC":    "ABC",
		"123":    "123",
		"8TE":    "8TE",
		"":       "",
	}

	for in, want := range tests {
		assert.Equal(t, want, PrettyRef(in), "input %q", in)
	}
}

func TestDisplayPrefersCatalogVariant(t *testing.T) {
	catalog := newFakeCatalog("TE8I", "U5D")
	catalog.preferred["TE8I"] = "TE-8-I"

	assert.Equal(t, "TE-8-I", Display(catalog, "TE8I"))
	assert.Equal(t, "U5D", Display(catalog, "U5D"))
	assert.Equal(t, "YA-300D", Display(nil, "YA300D"))
}
