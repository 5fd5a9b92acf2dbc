package catalog

import "time"

type CustomizationType string

const (
	TypeInput            CustomizationType = "input"
	TypeSelect           CustomizationType = "select"
	TypeCheckbox         CustomizationType = "checkbox"
	TypeImage            CustomizationType = "image"
	TypeFixedColorPicker CustomizationType = "fixed-color-picker"
)

// SelectOption is one choice of a "select" customization.
type SelectOption struct {
	Value    string  `json:"value"`
	Label    string  `json:"label"`
	PriceAdd float64 `json:"price_add"`
}

// CustomizationDefinition is reusable, category-scoped reference data
// describing one product option and its price impact.
type CustomizationDefinition struct {
	ID         string            `json:"id"`
	Type       CustomizationType `json:"type"`
	Label      string            `json:"label"`
	CategoryID string            `json:"category_id"`
	Required   bool              `json:"required"`
	PriceAdd   float64           `json:"price_add"`
	Options    []SelectOption    `json:"options,omitempty"`
}

// ColorOption is a swatch selectable through fixed-color-picker
// customizations. Availability only filters what is offered; a color that
// was already selected keeps pricing even after it is disabled.
type ColorOption struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Swatch    string  `json:"swatch"`
	Available bool    `json:"available"`
	PriceAdd  float64 `json:"price_add"`
}

type Category struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// CustomizationRef attaches a definition to a product, optionally
// overriding scalar fields. The type tag is never overridable.
type CustomizationRef struct {
	DefinitionID string   `json:"definition_id"`
	Label        *string  `json:"label,omitempty"`
	PriceAdd     *float64 `json:"price_add,omitempty"`
	Required     *bool    `json:"required,omitempty"`
}

// Product is the trusted, server-stored catalog record. Order lines copy
// what they need out of it; they never point back at it.
type Product struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	CategoryID     string             `json:"category_id"`
	BasePrice      float64            `json:"base_price"`
	ImageURL       *string            `json:"image_url,omitempty"`
	Available      bool               `json:"available"`
	Customizations []CustomizationRef `json:"customizations,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Resolve applies a product-level override onto a base definition.
// Only scalar fields (label, priceAdd, required) are replaced.
func Resolve(base CustomizationDefinition, ref CustomizationRef) CustomizationDefinition {
	out := base
	if ref.Label != nil {
		out.Label = *ref.Label
	}
	if ref.PriceAdd != nil {
		out.PriceAdd = *ref.PriceAdd
	}
	if ref.Required != nil {
		out.Required = *ref.Required
	}
	return out
}
