package matching

import "regexp"

var refShapeRegex = regexp.MustCompile(`^([A-Z]+)(\d+)([A-Z0-9]*)$`)

// PrettyRef hyphenates a canonical reference after its leading letters:
// TE8I -> TE-8I, YA300D -> YA-300D. A single leading letter stays joined
// (U5D) and anything not shaped letters-then-digits is returned as is.
func PrettyRef(c string) string {
	m := refShapeRegex.FindStringSubmatch(c)
	if m == nil || len(m[1]) == 1 {
		return c
	}
	return m[1] + "-" + m[2] + m[3]
}

// Display prefers the catalog's chosen variant over PrettyRef
func Display(catalog Catalog, c string) string {
	if catalog != nil {
		if v, ok := catalog.Preferred(c); ok && v != "" {
			return v
		}
	}
	return PrettyRef(c)
}
