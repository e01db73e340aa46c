package model

import "strings"

// Category is one of a fixed set of pantry sections.
type Category string

const (
	Dairy      Category = "dairy"
	Meat       Category = "meat"
	Vegetables Category = "vegetables"
	Fruits     Category = "fruits"
	Grains     Category = "grains"
	Condiments Category = "condiments"
	Snacks     Category = "snacks"
	Beverages  Category = "beverages"
	Other      Category = "other"
)

type categoryInfo struct {
	label string
	icon  string
}

var categoryOrder = []Category{
	Dairy, Meat, Vegetables, Fruits, Grains, Condiments, Snacks, Beverages, Other,
}

var categoryTable = map[Category]categoryInfo{
	Dairy:      {"Dairy", "🥛"},
	Meat:       {"Meat", "🥩"},
	Vegetables: {"Vegetables", "🥦"},
	Fruits:     {"Fruits", "🍎"},
	Grains:     {"Grains", "🌾"},
	Condiments: {"Condiments", "🧂"},
	Snacks:     {"Snacks", "🍿"},
	Beverages:  {"Beverages", "🥤"},
	Other:      {"Other", "📦"},
}

// Categories lists every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory accepts a category name in any case, surrounding blanks ignored.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := categoryTable[c]
	return c, ok
}

// NormalizeCategory maps empty or unknown values to Other.
func NormalizeCategory(s string) Category {
	if c, ok := ParseCategory(s); ok {
		return c
	}
	return Other
}

func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

func (c Category) Label() string {
	return categoryTable[NormalizeCategory(string(c))].label
}

func (c Category) Icon() string {
	return categoryTable[NormalizeCategory(string(c))].icon
}
