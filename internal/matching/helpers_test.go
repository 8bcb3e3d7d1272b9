package matching

import "scankey-catalog/internal/model"

type fakeCatalog struct {
	refs      map[string]model.RichData
	preferred map[string]string
}

func newFakeCatalog(refs ...string) *fakeCatalog {
	c := &fakeCatalog{
		refs:      make(map[string]model.RichData),
		preferred: make(map[string]string),
	}
	for _, r := range refs {
		c.refs[r] = model.RichData{}
	}
	return c
}

func (c *fakeCatalog) withBrand(ref, brand string) *fakeCatalog {
	c.refs[ref] = model.RichData{Ref: ref, Brand: brand}
	return c
}

func (c *fakeCatalog) Contains(ref string) bool {
	_, ok := c.refs[ref]
	return ok
}

func (c *fakeCatalog) Preferred(ref string) (string, bool) {
	v, ok := c.preferred[ref]
	return v, ok
}

func (c *fakeCatalog) Rich(ref string) model.RichData {
	return c.refs[ref]
}

func strPtr(s string) *string { return &s }
