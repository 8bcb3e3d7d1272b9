package matching

import (
	"regexp"
	"strings"
)

var (
	// Separated codes (TIF-15/20) or unseparated ones with a digit (TE8I)
	tokenRegex = regexp.MustCompile(
		`\b[A-Z0-9]{1,12}(?:[-/][A-Z0-9]{1,12}){0,4}\b|\b[A-Z]{1,10}\d[A-Z0-9]{0,14}\b`,
	)

	// Letters followed by digits at the start of a slash group (TE8 in TE8I)
	slashPrefixRegex = regexp.MustCompile(`^[A-Z]+\d+`)
)

const tokenTrimSet = " ,.;:()[]{}"

// ExtractTokens returns the reference-shaped tokens of text in reading order.
// Slash shorthand is expanded and duplicates are kept.
func ExtractTokens(text string) []string {
	normalized := NormalizeText(text)

	tokens := []string{}
	for _, m := range tokenRegex.FindAllString(normalized, -1) {
		m = strings.Trim(m, tokenTrimSet)
		if m == "" {
			continue
		}
		for _, t := range expandSlash(m) {
			if t = strings.Trim(t, tokenTrimSet); t != "" {
				tokens = append(tokens, t)
			}
		}
	}
	return tokens
}

// expandSlash splits slash shorthand into discrete codes:
//
//	TIF-15/20  -> TIF-15, TIF-20
//	TE8I/TE8D  -> TE8I, TE8D
//	TE8I/D     -> TE8I, TE8D
func expandSlash(tok string) []string {
	slash := strings.Index(tok, "/")
	if slash < 0 {
		return []string{tok}
	}

	if hyphen := strings.Index(tok, "-"); hyphen >= 0 && hyphen < slash {
		prefix, rest := tok[:hyphen], tok[hyphen+1:]
		parts := splitNonEmpty(rest, "/")
		if len(parts) == 0 {
			return []string{tok}
		}
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, prefix+"-"+p)
		}
		return out
	}

	parts := splitNonEmpty(tok, "/")
	if len(parts) == 0 {
		return []string{tok}
	}

	base := parts[0]
	prefix := slashPrefixRegex.FindString(base)
	if prefix == "" {
		prefix = base
	}

	out := make([]string, 0, len(parts))
	out = append(out, base)
	for _, p := range parts[1:] {
		if startsWithLetter(p) && hasDigit(p) {
			out = append(out, p)
			continue
		}
		out = append(out, prefix+p)
	}
	return out
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func startsWithLetter(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
