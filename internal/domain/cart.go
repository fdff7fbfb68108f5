package domain

import (
	"github.com/shopspring/decimal"
	"slices"
)

// Cart is an immutable snapshot: operations return a new Cart and leave the receiver untouched.
type Cart struct {
	Lines []CartLine
}

type CartLine struct {
	ProductID int64
	Quantity  int

	Snapshot *LineSnapshot
}

// LineSnapshot keeps the display fields captured when the product was first added.
type LineSnapshot struct {
	Title string
	Price decimal.Decimal
}

func EmptyCart() Cart {
	return Cart{}
}

func (c Cart) Len() int {
	return len(c.Lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) Line(productID int64) (CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return CartLine{}, false
	}
	return c.Lines[i], true
}

func (c Cart) Quantities() map[int64]int {
	result := make(map[int64]int, len(c.Lines))
	for _, line := range c.Lines {
		result[line.ProductID] = line.Quantity
	}
	return result
}

func (c Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.Lines))
	for _, line := range c.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

// AddOrIncrement merges delta into an existing line or appends a new one.
// delta is normalized to [1, MaxQuantity] and the merged sum saturates at MaxQuantity.
func (c Cart) AddOrIncrement(productID int64, delta int, snapshot *LineSnapshot) Cart {
	delta = NormalizeQuantity(delta)

	lines := c.clone()
	if i := c.index(productID); i >= 0 {
		lines[i].Quantity = AddQuantity(lines[i].Quantity, delta)
		if lines[i].Snapshot == nil && snapshot != nil {
			lines[i].Snapshot = copySnapshot(snapshot)
		}
		return Cart{Lines: lines}
	}

	lines = append(lines, CartLine{
		ProductID: productID,
		Quantity:  delta,
		Snapshot:  copySnapshot(snapshot),
	})
	return Cart{Lines: lines}
}

// SetQuantity replaces the line quantity, clamped to [1, maxStock] when maxStock > 0.
func (c Cart) SetQuantity(productID int64, quantity, maxStock int) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}

	lines := c.clone()
	lines[i].Quantity = clampQuantity(quantity, maxStock)
	return Cart{Lines: lines}
}

// Increase adds one unit; maxStock <= 0 means stock is unknown and the increment is unbounded.
func (c Cart) Increase(productID int64, maxStock int) Cart {
	line, ok := c.Line(productID)
	if !ok {
		return c
	}
	return c.SetQuantity(productID, AddQuantity(line.Quantity, 1), maxStock)
}

// Decrease removes one unit and never goes below 1; use Remove to drop the line.
func (c Cart) Decrease(productID int64) Cart {
	line, ok := c.Line(productID)
	if !ok {
		return c
	}
	return c.SetQuantity(productID, line.Quantity-1, 0)
}

func (c Cart) Remove(productID int64) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	return Cart{Lines: slices.Delete(c.clone(), i, i+1)}
}

func (c Cart) index(productID int64) int {
	return slices.IndexFunc(c.Lines, func(line CartLine) bool {
		return line.ProductID == productID
	})
}

func (c Cart) clone() []CartLine {
	if len(c.Lines) == 0 {
		return nil
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}

func copySnapshot(s *LineSnapshot) *LineSnapshot {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func clampQuantity(quantity, maxStock int) int {
	quantity = NormalizeQuantity(quantity)
	if maxStock > 0 {
		quantity = min(quantity, maxStock)
	}
	return quantity
}
