package directory

import "slices"

// Category is an entry of the fixed category catalog offered to browsers
// and to the business registration form.
type Category struct {
	Name        string
	DisplayName string
	Icon        string
}

var catalog = []Category{
	{Name: "Salon", DisplayName: "Hair & Beauty", Icon: "💇"},
	{Name: "Restaurant", DisplayName: "Food & Drink", Icon: "🍽️"},
	{Name: "Auto Repair", DisplayName: "Repairs & Services", Icon: "🔧"},
	{Name: "Grocery", DisplayName: "Shops & Spaza", Icon: "🏪"},
}

// Categories returns the category catalog in display order.
func Categories() []Category {
	return slices.Clone(catalog)
}

// IsKnownCategory reports whether name is one of the catalog categories.
func IsKnownCategory(name string) bool {
	return slices.ContainsFunc(catalog, func(c Category) bool {
		return c.Name == name
	})
}
