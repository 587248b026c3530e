// Package catalog holds the merchant's fixed product list.
package catalog

import (
	"sort"

	"github.com/safar/rakhi-store/internal/models"
)

type Catalog struct {
	products []models.Product
	byID     map[string]int
}

// New builds a catalog listed by descending discount. Products with equal
// discount keep the order they were passed in.
func New(products ...models.Product) *Catalog {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DiscountPercent > sorted[j].DiscountPercent
	})

	byID := make(map[string]int, len(sorted))
	for i, p := range sorted {
		byID[p.ID] = i
	}

	return &Catalog{products: sorted, byID: byID}
}

func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Get(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func Default() *Catalog {
	return New(rakhis...)
}
