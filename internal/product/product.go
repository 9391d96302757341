package product

// ConfigOption is one selectable hardware configuration choice with the price
// added on top of the product's final price when selected.
type ConfigOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Price int64  `json:"price"`
}

// ConfigOptions groups the selectable options per configuration axis.
type ConfigOptions struct {
	RAM      []ConfigOption `json:"ram"`
	Storage  []ConfigOption `json:"storage"`
	Warranty []ConfigOption `json:"warranty"`
}

// Specs is the fixed set of spec-sheet attributes shown on product pages.
type Specs struct {
	Processor string `json:"processor,omitempty"`
	RAM       string `json:"ram,omitempty"`
	Storage   string `json:"storage,omitempty"`
	Display   string `json:"display,omitempty"`
	Graphics  string `json:"graphics,omitempty"`
	OS        string `json:"os,omitempty"`
}

// Product maps to the `product` table. Prices are whole rupees.
// FinalPrice is derived from Price and DiscountPercent and recomputed on
// every create/update.
type Product struct {
	ID              int           `json:"productId"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug,omitempty"`
	Brand           string        `json:"brand"`
	Category        string        `json:"category"`
	Description     string        `json:"description"`
	Specs           Specs         `json:"specs"`
	Rating          float64       `json:"rating"`
	Reviews         int           `json:"reviews"`
	Price           int64         `json:"price"`
	DiscountPercent int64         `json:"discountPercent"`
	FinalPrice      int64         `json:"finalPrice"`
	Stock           int           `json:"stock"`
	Image           string        `json:"image"`
	Images          []string      `json:"images,omitempty"`
	IsNewItem       bool          `json:"isNewItem"`
	IsTrending      bool          `json:"isTrending"`
	IsBestDeal      bool          `json:"isBestDeal"`
	Condition       string        `json:"condition"`
	ConfigOptions   ConfigOptions `json:"configOptions"`
	CreatedAt       string        `json:"createdAt,omitempty"`
	UpdatedAt       string        `json:"updatedAt,omitempty"`
}

// AllowedCategories contains the supported product categories used across the app.
var AllowedCategories = []string{
	"Business Laptops",
	"Gaming Laptops",
	"Ultrabooks",
	"Workstations",
	"Student & Home",
	"Accessories",
}

// AllowedConditions for refurbished stock grading.
var AllowedConditions = []string{"Like New", "Excellent", "Good", "New"}

// DefaultConfigOptions are applied when a product is created without its own
// option lists. The zero-price entry on each axis is the base configuration.
var DefaultConfigOptions = ConfigOptions{
	RAM: []ConfigOption{
		{Label: "8GB RAM", Value: "8GB", Price: 0},
		{Label: "16GB RAM", Value: "16GB", Price: 4000},
		{Label: "32GB RAM", Value: "32GB", Price: 8000},
	},
	Storage: []ConfigOption{
		{Label: "256GB SSD", Value: "256GB", Price: 0},
		{Label: "512GB SSD", Value: "512GB", Price: 3000},
		{Label: "1TB SSD", Value: "1TB", Price: 6000},
	},
	Warranty: []ConfigOption{
		{Label: "1 Year Warranty", Value: "1 Year", Price: 0},
		{Label: "2 Year Coverage", Value: "2 Year", Price: 2499},
		{Label: "3 Year Premium", Value: "3 Year", Price: 4499},
	},
}

// FindOption returns the option on the given axis whose machine value matches,
// or false when the axis has no such option.
func (co ConfigOptions) FindOption(axis, value string) (ConfigOption, bool) {
	var list []ConfigOption
	switch axis {
	case "ram":
		list = co.RAM
	case "storage":
		list = co.Storage
	case "warranty":
		list = co.Warranty
	}
	for _, opt := range list {
		if opt.Value == value {
			return opt, true
		}
	}
	return ConfigOption{}, false
}

// ComputeFinalPrice derives the discounted price from the base price.
func ComputeFinalPrice(price, discountPercent int64) int64 {
	if discountPercent <= 0 {
		return price
	}
	return price - price*discountPercent/100
}
