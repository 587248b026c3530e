package store

import (
	"github.com/safar/rakhi-store/internal/catalog"
	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/models"
)

type ProductView struct {
	models.Product
	EffectivePrice int64 `json:"effective_price"`
}

func newProductView(p models.Product) ProductView {
	return ProductView{Product: p, EffectivePrice: p.EffectivePrice()}
}

// ListProducts pages through the catalog in display order.
func ListProducts(c *catalog.Catalog, page, pageSize int) OffsetPage {
	products := c.List()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return Paginate(views, page, pageSize)
}

func GetProduct(c *catalog.Catalog, id string) (ProductView, error) {
	p, ok := c.Get(id)
	if !ok {
		return ProductView{}, database.ErrProductNotFound
	}
	return newProductView(p), nil
}
