// Package catalog derives categories, filters and recommendations from a
// pharmacy catalogue. All functions are pure and never modify their input.
package catalog

import (
	"strings"

	"farmafacil/internal/model"
)

// AllCategory is the synthetic category that matches every product.
const AllCategory = "All"

// RecommendationLimit is how many related products are shown per item.
const RecommendationLimit = 2

// Categories returns AllCategory followed by each distinct category in
// first-seen order.
func Categories(items []model.Product) []string {
	categories := []string{AllCategory}
	seen := map[string]struct{}{AllCategory: {}}

	for _, p := range items {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	return categories
}

// Filter returns the items whose name contains search (case-insensitive)
// and whose category equals category. An empty category means AllCategory.
// The result is never nil.
func Filter(items []model.Product, search, category string) []model.Product {
	needle := strings.ToLower(search)
	all := category == "" || category == AllCategory

	filtered := make([]model.Product, 0, len(items))
	for _, p := range items {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if !all && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// Recommendations returns up to limit other items sharing product's category,
// in catalogue order.
func Recommendations(items []model.Product, product model.Product, limit int) []model.Product {
	related := make([]model.Product, 0, limit)
	if limit <= 0 {
		return related
	}

	for _, p := range items {
		if p.ID == product.ID || p.Category != product.Category {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}

	return related
}

// Find returns the product with the given id.
func Find(items []model.Product, id string) (model.Product, bool) {
	for _, p := range items {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Entry is a catalogue item with its related products.
type Entry struct {
	model.Product
	Related []model.Product `json:"related"`
}

// View is the catalogue screen for one search and category selection.
type View struct {
	Categories []string `json:"categories"`
	Category   string   `json:"category"`
	Search     string   `json:"search"`
	Items      []Entry  `json:"items"`
}

// Browse builds the catalogue screen. Recommendations are drawn from the
// whole catalogue, not only from the filtered items.
func Browse(items []model.Product, search, category string) View {
	if category == "" {
		category = AllCategory
	}

	filtered := Filter(items, search, category)
	entries := make([]Entry, len(filtered))
	for i, p := range filtered {
		entries[i] = Entry{
			Product: p,
			Related: Recommendations(items, p, RecommendationLimit),
		}
	}

	return View{
		Categories: Categories(items),
		Category:   category,
		Search:     search,
		Items:      entries,
	}
}
