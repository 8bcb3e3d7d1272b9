package matching

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var canonAlphabet = regexp.MustCompile(`^[A-Z0-9]*$`)

func TestCanon(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TE-8I", "TE8I"},
		{" te8i ", "TE8I"},
		{"TIF-15/20", "TIF1520"},
		{"YA.300_D", "YA300D"},
		{"Ñ-12", "12"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Canon(tt.in))
		})
	}
}

func TestCanonIsIdempotentAndAlphanumeric(t *testing.T) {
	inputs := []string{
		"TE-8I", "tok 83d", "ＴＥ８Ｉ", "a/b/c", "¡¿Œ∑!", "U5D", "  ", "12-34_56", "é1",
	}

	for _, in := range inputs {
		once := Canon(in)
		assert.Equal(t, once, Canon(once), "input %q", in)
		assert.Regexp(t, canonAlphabet, once, "input %q", in)
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "TE-8I", NormalizeText("te—8i"))
	assert.Equal(t, "TE-8I", NormalizeText("te–8i"))
	assert.Equal(t, "TE-8I", NormalizeText("te_8i"))
	assert.Equal(t, "TE8I", NormalizeText("ＴＥ８Ｉ"))
	assert.Equal(t, "CODIGO TE8I", NormalizeText("código te8i"))
}
