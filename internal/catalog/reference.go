package catalog

// Reference holds the static lookup tables (categories, customization
// definitions, color options) built once at startup and passed by
// reference into pricing and reconciliation. It is never mutated after
// construction.
type Reference struct {
	categories  map[string]Category
	definitions map[string]CustomizationDefinition
	colors      map[string]ColorOption
}

func NewReference(cats []Category, defs []CustomizationDefinition, colors []ColorOption) *Reference {
	r := &Reference{
		categories:  make(map[string]Category, len(cats)),
		definitions: make(map[string]CustomizationDefinition, len(defs)),
		colors:      make(map[string]ColorOption, len(colors)),
	}
	for _, c := range cats {
		r.categories[c.ID] = c
	}
	for _, d := range defs {
		r.definitions[d.ID] = d
	}
	for _, c := range colors {
		r.colors[c.ID] = c
	}
	return r
}

func (r *Reference) Category(id string) (Category, bool) {
	c, ok := r.categories[id]
	return c, ok
}

func (r *Reference) Definition(id string) (CustomizationDefinition, bool) {
	d, ok := r.definitions[id]
	return d, ok
}

func (r *Reference) Color(id string) (ColorOption, bool) {
	c, ok := r.colors[id]
	return c, ok
}

func (r *Reference) Categories() []Category {
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out
}

// AvailableColors returns the colors currently offered to shoppers.
func (r *Reference) AvailableColors() []ColorOption {
	out := make([]ColorOption, 0, len(r.colors))
	for _, c := range r.colors {
		if c.Available {
			out = append(out, c)
		}
	}
	return out
}

// EffectiveDefinitions resolves a product's customization refs against
// the base definitions, producing the per-product definition set:
// scalar overrides applied, type tags untouched. Refs pointing at
// unknown definitions are dropped.
func (r *Reference) EffectiveDefinitions(refs []CustomizationRef) map[string]CustomizationDefinition {
	if len(refs) == 0 {
		return nil
	}
	out := make(map[string]CustomizationDefinition, len(refs))
	for _, ref := range refs {
		base, ok := r.Definition(ref.DefinitionID)
		if !ok {
			continue
		}
		out[ref.DefinitionID] = Resolve(base, ref)
	}
	return out
}

// DefinitionsForCategory returns the definitions scoped to one category.
func (r *Reference) DefinitionsForCategory(categoryID string) []CustomizationDefinition {
	out := make([]CustomizationDefinition, 0)
	for _, d := range r.definitions {
		if d.CategoryID == categoryID {
			out = append(out, d)
		}
	}
	return out
}
