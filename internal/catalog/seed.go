package catalog

// Default reference data for the storefront. Definitions of type
// fixed-color-picker are authored with a zero priceAdd; the surcharge
// comes from the selected color itself.
func DefaultReference() *Reference {
	return NewReference(defaultCategories, defaultDefinitions, defaultColors)
}

var defaultCategories = []Category{
	{ID: "keychains", Name: "Keychains", BasePrice: 149},
	{ID: "earrings", Name: "Earrings", BasePrice: 199},
	{ID: "coasters", Name: "Coasters", BasePrice: 249},
	{ID: "lithophanes", Name: "Lithophanes", BasePrice: 399},
}

var defaultColors = []ColorOption{
	{ID: "pla-jet-black", Label: "Jet Black", Swatch: "#111111", Available: true, PriceAdd: 0},
	{ID: "pla-arctic-white", Label: "Arctic White", Swatch: "#f5f5f5", Available: true, PriceAdd: 0},
	{ID: "pla-candy-red", Label: "Candy Red", Swatch: "#d62839", Available: true, PriceAdd: 50},
	{ID: "pla-ocean-blue", Label: "Ocean Blue", Swatch: "#1b6ca8", Available: true, PriceAdd: 0},
	{ID: "pla-glow-green", Label: "Glow in the Dark", Swatch: "#b6f542", Available: true, PriceAdd: 75},
	{ID: "pla-silk-gold", Label: "Silk Gold", Swatch: "#d4a017", Available: false, PriceAdd: 60},
}

var defaultDefinitions = []CustomizationDefinition{
	{
		ID:         "keychain-primary-color",
		Type:       TypeFixedColorPicker,
		Label:      "Primary color",
		CategoryID: "keychains",
		Required:   true,
		PriceAdd:   0,
	},
	{
		ID:         "keychain-name-text",
		Type:       TypeInput,
		Label:      "Name on keychain",
		CategoryID: "keychains",
		Required:   true,
		PriceAdd:   0,
	},
	{
		ID:         "keychain-charm",
		Type:       TypeSelect,
		Label:      "Charm attachment",
		CategoryID: "keychains",
		PriceAdd:   30,
		Options: []SelectOption{
			{Value: "none", Label: "None"},
			{Value: "star", Label: "Star"},
			{Value: "heart", Label: "Heart"},
		},
	},
	{
		ID:         "earring-color",
		Type:       TypeFixedColorPicker,
		Label:      "Color",
		CategoryID: "earrings",
		Required:   true,
		PriceAdd:   0,
	},
	{
		ID:         "earring-hook-upgrade",
		Type:       TypeCheckbox,
		Label:      "Sterling silver hooks",
		CategoryID: "earrings",
		PriceAdd:   99,
	},
	{
		ID:         "coaster-engraving",
		Type:       TypeInput,
		Label:      "Engraved text",
		CategoryID: "coasters",
		PriceAdd:   49,
	},
	{
		ID:         "coaster-color",
		Type:       TypeFixedColorPicker,
		Label:      "Color",
		CategoryID: "coasters",
		PriceAdd:   0,
	},
	{
		ID:         "lithophane-photo",
		Type:       TypeImage,
		Label:      "Your photo",
		CategoryID: "lithophanes",
		Required:   true,
		PriceAdd:   0,
	},
	{
		ID:         "lithophane-frame",
		Type:       TypeSelect,
		Label:      "Frame style",
		CategoryID: "lithophanes",
		PriceAdd:   0,
		Options: []SelectOption{
			{Value: "flat", Label: "Flat panel"},
			{Value: "curved", Label: "Curved"},
			{Value: "backlit-box", Label: "Backlit box"},
		},
	},
	{
		ID:         "lithophane-led-base",
		Type:       TypeCheckbox,
		Label:      "LED light base",
		CategoryID: "lithophanes",
		PriceAdd:   249,
	},
}
