// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Category represents the department a product is shelved in.
type Category string

const (
	// CategoryGrocery indicates food and household staples.
	CategoryGrocery Category = "GROCERY"
	// CategoryElectronics indicates consumer electronics.
	CategoryElectronics Category = "ELECTRONICS"
	// CategoryClothing indicates apparel.
	CategoryClothing Category = "CLOTHING"
	// CategoryBeauty indicates cosmetics and personal care.
	CategoryBeauty Category = "BEAUTY"
	// CategoryHomeAppliances indicates household appliances.
	CategoryHomeAppliances Category = "HOME_APPLIANCES"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryGrocery,
		CategoryElectronics,
		CategoryClothing,
		CategoryBeauty,
		CategoryHomeAppliances,
	}
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	return slices.Contains(Categories(), c)
}

// ParseCategory converts a case-insensitive category code into a Category.
// Dashes and spaces are accepted in place of underscores.
func ParseCategory(s string) (Category, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	category := Category(normalized)
	if !category.IsValid() {
		return "", false
	}

	return category, true
}
