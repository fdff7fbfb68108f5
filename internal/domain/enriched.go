package domain

import "github.com/shopspring/decimal"

// EnrichedLine is a cart line joined with live catalog data. It is never persisted.
type EnrichedLine struct {
	ProductID int64
	Quantity  int
	Title     string
	Price     decimal.Decimal
	Thumbnail string
	Stock     int
}

func NewEnrichedLine(line CartLine, product Product) EnrichedLine {
	return EnrichedLine{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Title:     product.Title,
		Price:     product.Price,
		Thumbnail: product.Thumbnail,
		Stock:     product.Stock,
	}
}

func (l EnrichedLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ComputeTotal sums price * quantity over all lines; an empty slice totals zero.
func ComputeTotal(lines []EnrichedLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
