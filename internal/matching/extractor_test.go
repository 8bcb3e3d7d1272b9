package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"hyphen slash shorthand", "TIF-15/20", []string{"TIF-15", "TIF-20"}},
		{"letter suffix shorthand", "TE8I/D", []string{"TE8I", "TE8D"}},
		{"full codes joined by slash", "TE8I/TE8D", []string{"TE8I", "TE8D"}},
		{"numeric suffix appended to prefix", "TE8/9", []string{"TE8", "TE89"}},
		{"free text", "code TEBI please", []string{"CODE", "TEBI", "PLEASE"}},
		{"dashes and underscores", "te8i — yale_300", []string{"TE8I", "YALE-300"}},
		{"punctuation around tokens", "(JMA TE8I), 12.", []string{"JMA", "TE8I", "12"}},
		{"duplicates kept", "TE8I x TE8I", []string{"TE8I", "X", "TE8I"}},
		{"full width", "ＴＥ８Ｉ", []string{"TE8I"}},
		{"overlong word is not a token", "ABCDEFGHIJKLMNOP", []string{}},
		{"empty", "", []string{}},
		{"garbage", "!!! ### ...", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTokens(tt.text))
		})
	}
}

func TestExtractTokensKeepsReadingOrder(t *testing.T) {
	text := "first YA300D then TOK-83D and finally U5D"
	tokens := ExtractTokens(text)
	normalized := NormalizeText(text)

	last := -1
	for _, tok := range tokens {
		pos := strings.Index(normalized[last+1:], tok)
		if !assert.GreaterOrEqual(t, pos, 0, "token %s", tok) {
			return
		}
		last += 1 + pos
	}
	assert.Equal(t, []string{"FIRST", "YA300D", "THEN", "TOK-83D", "AND", "FINALLY", "U5D"}, tokens)
}

func TestExpandSlash(t *testing.T) {
	assert.Equal(t, []string{"TE8I"}, expandSlash("TE8I"))
	assert.Equal(t, []string{"TIF-15", "TIF-20", "TIF-25"}, expandSlash("TIF-15/20/25"))
	assert.Equal(t, []string{"TE8I", "TE-8D"}, expandSlash("TE8I/TE-8D"))
	assert.Equal(t, []string{"AB", "ABCD"}, expandSlash("AB/CD"))
	assert.Equal(t, []string{"/"}, expandSlash("/"))
}
