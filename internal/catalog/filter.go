package catalog

import "github.com/hollowaylabs/vitrine/internal/types"

// Filter returns the products matching the given preferences, preserving
// catalog order. An empty category or brand list means no filter on that
// dimension. Price bands are half-open at the lower edge: a 50.00 product
// falls in "0-50", a 100.00 product in "50-100".
func Filter(products []types.Product, prefs types.Preferences) []types.Product {
	out := []types.Product{}
	for _, p := range products {
		if !matchesPriceRange(p.Price, prefs.PriceRange) {
			continue
		}
		if len(prefs.Categories) > 0 && !containsString(prefs.Categories, p.Category) {
			continue
		}
		if len(prefs.Brands) > 0 && !containsString(prefs.Brands, p.Brand) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesPriceRange(price float64, band types.PriceRange) bool {
	switch band {
	case types.PriceRangeLow:
		return price <= 50
	case types.PriceRangeMid:
		return price > 50 && price <= 100
	case types.PriceRangeHigh:
		return price > 100
	default:
		// "all" or unset
		return true
	}
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
