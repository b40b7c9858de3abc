package catalog

import (
	"sort"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

// Sort keys shared by the category and search views.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortRelevance = "relevance"
)

// NativeOrdering maps a sort key to the API's ordering parameter, or ""
// when the key has to be sorted client side.
func NativeOrdering(key string) string {
	switch key {
	case SortPriceAsc:
		return "price"
	case SortPriceDesc:
		return "-price"
	case SortNewest:
		return "-created_at"
	}
	return ""
}

// SortProducts orders a product list client side. The sort is stable, so
// ties keep their prior relative order; a missing price counts as 0 and a
// missing created date as the zero time.
func SortProducts(products []models.Product, key string) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedTime().After(sorted[j].CreatedTime())
		})
	}
	return sorted
}
