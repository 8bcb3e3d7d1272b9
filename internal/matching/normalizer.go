package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var dashReplacer = strings.NewReplacer("—", "-", "–", "-", "_", "-")

// NormalizeText prepares raw OCR text for token extraction.
// Full-width glyphs are folded and accents removed before uppercasing.
func NormalizeText(s string) string {
	t := transform.Chain(width.Fold, norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	s = strings.ToUpper(s)
	return dashReplacer.Replace(s)
}

// Canon reduces a token to its catalog key: uppercase A-Z and 0-9 only
func Canon(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
