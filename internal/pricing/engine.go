package pricing

import "charmforge-be/internal/catalog"

// Engine derives unit and line prices from a base price plus the
// customization surcharges of a selection. All lookups are best-effort:
// a selection that does not resolve to a known definition or color
// contributes nothing instead of failing, so half-finished selections
// made while a shopper is still editing never error out.
type Engine struct {
	ref *catalog.Reference
}

func NewEngine(ref *catalog.Reference) *Engine {
	return &Engine{ref: ref}
}

// UnitPrice returns the price of a single unit: the base price plus every
// surcharge the selections carry. Selections map customization definition
// ids to the selected value (a color id, a select value, entered text or
// "true" for checkboxes).
//
// For fixed-color-picker definitions both the selected color's priceAdd
// and the definition's own priceAdd accumulate. Shipped definitions of
// that type carry a zero priceAdd, so the second path is normally silent,
// but the additive behavior is load-bearing for historical orders and
// must not be collapsed into either/or.
func (e *Engine) UnitPrice(basePrice float64, selections map[string]string) float64 {
	return e.UnitPriceWith(basePrice, selections, nil)
}

// UnitPriceWith prices one unit with a product's effective definitions
// layered over the global table. Overrides win for the definitions they
// name; every other selection falls back to the shared reference data.
// Products override definitions through catalog.Resolve, so a stored
// per-product priceAdd replaces the base definition's surcharge here.
func (e *Engine) UnitPriceWith(basePrice float64, selections map[string]string, overrides map[string]catalog.CustomizationDefinition) float64 {
	unitPrice := basePrice

	for defID, value := range selections {
		def, ok := overrides[defID]
		if !ok {
			def, ok = e.ref.Definition(defID)
		}
		if !ok {
			continue
		}

		if def.Type == catalog.TypeFixedColorPicker {
			// Availability is deliberately not re-checked here: it only
			// filters what is offered, not what was already selected.
			if color, ok := e.ref.Color(value); ok {
				unitPrice += color.PriceAdd
			}
		}

		if def.PriceAdd != 0 {
			unitPrice += def.PriceAdd
		}
	}

	return unitPrice
}

// LineTotal is the unit price multiplied by quantity. Quantity must be a
// positive integer; clamping is the caller's job.
func (e *Engine) LineTotal(basePrice float64, selections map[string]string, quantity int) float64 {
	return e.UnitPrice(basePrice, selections) * float64(quantity)
}
