package cart

import (
	"github.com/safar/rakhi-store/internal/database"
	"github.com/safar/rakhi-store/internal/models"
)

// Cart holds at most one line per product, in the order products were first
// added. Unit prices are captured when a product is first added.
type Cart struct {
	Lines []models.CartLine `json:"lines"`
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) Add(p models.Product, quantity int) error {
	if quantity < 1 {
		return database.ErrInvalidQuantity
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}

	c.Lines = append(c.Lines, models.CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		Quantity:  quantity,
		UnitPrice: p.EffectivePrice(),
	})
	return nil
}

func (c *Cart) Line(productID string) (models.CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return models.CartLine{}, false
}

func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
