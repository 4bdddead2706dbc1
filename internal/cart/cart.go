// Package cart implements the kiosk shopping cart and its two submission
// variants.
package cart

import (
	"farmafacil/internal/model"

	"github.com/shopspring/decimal"
)

// Cart maps product ids to quantities. Products keeps one entry per distinct
// product in first-add order. The zero value is an empty cart.
type Cart struct {
	Quantities map[string]int  `json:"quantities"`
	Products   []model.Product `json:"products"`
	Submitted  bool            `json:"submitted"`
	Submission *Confirmation   `json:"submission,omitempty"`
}

// Line is one distinct product in the cart.
type Line struct {
	Product  model.Product   `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Add puts one unit of p in the cart. Adding a product already in the cart
// increments its quantity.
func (c *Cart) Add(p model.Product) error {
	if c.Submitted {
		return model.ErrCartSubmitted
	}

	if c.Quantities == nil {
		c.Quantities = make(map[string]int)
	}
	if c.Quantities[p.ID] == 0 {
		c.Products = append(c.Products, p)
	}
	c.Quantities[p.ID]++

	return nil
}

// Len is the number of units in the cart.
func (c *Cart) Len() int {
	n := 0
	for _, q := range c.Quantities {
		n += q
	}
	return n
}

// IsEmpty reports whether the cart holds no units.
func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// Lines returns the cart contents in first-add order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.Products))
	for _, p := range c.Products {
		q := c.Quantities[p.ID]
		if q == 0 {
			continue
		}
		lines = append(lines, Line{
			Product:  p,
			Quantity: q,
			Subtotal: p.Price.Mul(decimal.NewFromInt(int64(q))),
		})
	}
	return lines
}

// Total is the sum of quantity times price over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines() {
		total = total.Add(l.Subtotal)
	}
	return total
}

// Clear empties the cart and drops any submission.
func (c *Cart) Clear() {
	c.Quantities = nil
	c.Products = nil
	c.Submitted = false
	c.Submission = nil
}

// View is the cart as rendered by the kiosk.
type View struct {
	Lines      []Line          `json:"lines"`
	Units      int             `json:"units"`
	Total      decimal.Decimal `json:"total"`
	Submitted  bool            `json:"submitted"`
	Submission *Confirmation   `json:"submission,omitempty"`
}

// View returns a snapshot of the cart.
func (c *Cart) View() View {
	return View{
		Lines:      c.Lines(),
		Units:      c.Len(),
		Total:      c.Total(),
		Submitted:  c.Submitted,
		Submission: c.Submission,
	}
}
