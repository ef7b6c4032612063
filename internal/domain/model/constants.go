package model

// Business type constants used across the directory.
const (
	CategoryRestaurant     = "restaurant"
	CategoryCafe           = "cafe"
	CategoryBakery         = "bakery"
	CategoryShop           = "shop"
	CategoryBar            = "bar"
	CategoryCulturalCenter = "cultural_center"
	CategoryChurch         = "church"
	CategoryService        = "service"
)

// CategoryMetadata display name, description and icon for a business type.
type CategoryMetadata struct {
	Name        string
	Description string
	Icon        string
}

// CategoryMetadataMap static display metadata keyed by business type.
var CategoryMetadataMap = map[string]CategoryMetadata{
	CategoryRestaurant: {
		Name:        "Restaurants",
		Description: "Portuguese restaurants and dining experiences",
		Icon:        "🍽️",
	},
	CategoryCafe: {
		Name:        "Cafés",
		Description: "Lusophone cafés and coffee shops",
		Icon:        "☕",
	},
	CategoryBakery: {
		Name:        "Bakeries",
		Description: "Lusophone bakeries and pastry shops",
		Icon:        "🥖",
	},
	CategoryShop: {
		Name:        "Shops",
		Description: "Lusophone grocery stores and specialty shops",
		Icon:        "🛍️",
	},
	CategoryBar: {
		Name:        "Bars & Pubs",
		Description: "Lusophone bars and entertainment venues",
		Icon:        "🍻",
	},
	CategoryCulturalCenter: {
		Name:        "Cultural Centers",
		Description: "Lusophone cultural and community centers",
		Icon:        "🏛️",
	},
	CategoryChurch: {
		Name:        "Churches",
		Description: "Lusophone churches and religious centers",
		Icon:        "⛪",
	},
	CategoryService: {
		Name:        "Services",
		Description: "Lusophone professional services",
		Icon:        "🔧",
	},
}

// GetCategoryMetadata returns the display metadata for a business type,
// falling back to the raw type name and a generic icon.
func GetCategoryMetadata(businessType string) CategoryMetadata {
	if meta, ok := CategoryMetadataMap[businessType]; ok {
		return meta
	}
	return CategoryMetadata{Name: businessType, Icon: "🏢"}
}
