package matching

const (
	DefaultMaxFlips   = 2
	DefaultVariantCap = 64
)

// Confusion pairs observed in OCR output. Alternatives are tried in the
// listed order, which makes variant generation order stable.
var confusionTable = []struct {
	char byte
	alts string
}{
	{'0', "OQ"},
	{'O', "0Q"},
	{'Q', "0O"},
	{'1', "IL"},
	{'I', "1L"},
	{'L', "1I"},
	{'5', "S"},
	{'S', "5"},
	{'2', "Z"},
	{'Z', "2"},
	{'8', "B"},
	{'B', "8"},
	{'6', "G"},
	{'G', "6"},
}

var confusables = buildConfusables()

func buildConfusables() [256]string {
	var table [256]string
	for _, e := range confusionTable {
		table[e.char] = e.alts
	}
	return table
}

// Confusable returns the characters OCR may have produced instead of c
func Confusable(c byte) string {
	return confusables[c]
}

// Expander generates OCR-confusion variants of a canonical token
type Expander struct {
	MaxFlips int
	Cap      int
}

// NewExpander returns an expander, falling back to defaults for non-positive values
func NewExpander(maxFlips, variantCap int) Expander {
	if maxFlips <= 0 {
		maxFlips = DefaultMaxFlips
	}
	if variantCap <= 0 {
		variantCap = DefaultVariantCap
	}
	return Expander{MaxFlips: maxFlips, Cap: variantCap}
}

// Expand returns token followed by its variants in generation order:
// layer by layer, strings in the order they were produced, positions left
// to right, alternatives in table order. The result never holds more than
// Cap strings and no variant is more than MaxFlips substitutions away.
func (e Expander) Expand(token string) []string {
	out := []string{token}

	positions := confusablePositions(token)
	if len(positions) == 0 || len(out) >= e.Cap {
		return out
	}

	seen := map[string]struct{}{token: {}}
	layer := []string{token}

	for flips := 0; flips < e.MaxFlips && len(out) < e.Cap; flips++ {
		var next []string

	generate:
		for _, s := range layer {
			for _, i := range positions {
				alts := confusables[s[i]]
				for j := 0; j < len(alts); j++ {
					b := []byte(s)
					b[i] = alts[j]
					v := string(b)
					if _, ok := seen[v]; ok {
						continue
					}
					seen[v] = struct{}{}
					out = append(out, v)
					next = append(next, v)
					if len(out) >= e.Cap {
						break generate
					}
				}
			}
		}

		if len(next) == 0 {
			break
		}
		layer = next
	}

	return out
}

// Substitutions never leave the confusion alphabet, so positions found in
// the input token stay valid for every variant.
func confusablePositions(s string) []int {
	var positions []int
	for i := 0; i < len(s); i++ {
		if confusables[s[i]] != "" {
			positions = append(positions, i)
		}
	}
	return positions
}
