package httpapi

import (
	"encoding/json"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
)

// quantityInput accepts a JSON number or the raw text of a quantity field;
// text that is not a number, and values below 1, become 1.
type quantityInput int

func (q *quantityInput) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*q = quantityInput(domain.NormalizeQuantity(n))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = quantityInput(domain.ParseQuantity(s))
		return nil
	}

	return &domain.ValidationError{Field: "quantity", Reason: "must be a number"}
}

type addItemRequest struct {
	ProductID int64          `json:"productId"`
	Quantity  *quantityInput `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type cartLineDTO struct {
	ProductID int64            `json:"productId"`
	Quantity  int              `json:"quantity"`
	Title     string           `json:"title,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

type cartDTO struct {
	Lines []cartLineDTO `json:"lines"`
}

type enrichedLineDTO struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Thumbnail string          `json:"thumbnail"`
	Stock     int             `json:"stock"`
}

type cartSummaryDTO struct {
	Lines    []enrichedLineDTO `json:"lines"`
	Total    decimal.Decimal   `json:"total"`
	Currency string            `json:"currency"`
}

func mapCartToDTO(cart domain.Cart) cartDTO {
	lines := make([]cartLineDTO, 0, cart.Len())
	for _, line := range cart.Lines {
		dto := cartLineDTO{ProductID: line.ProductID, Quantity: line.Quantity}
		if line.Snapshot != nil {
			price := line.Snapshot.Price
			dto.Title = line.Snapshot.Title
			dto.Price = &price
		}
		lines = append(lines, dto)
	}
	return cartDTO{Lines: lines}
}

func mapSummaryToDTO(summary service.CartSummary) cartSummaryDTO {
	lines := make([]enrichedLineDTO, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		lines = append(lines, enrichedLineDTO{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Title:     line.Title,
			Price:     line.Price,
			Subtotal:  line.Subtotal(),
			Thumbnail: line.Thumbnail,
			Stock:     line.Stock,
		})
	}

	return cartSummaryDTO{
		Lines:    lines,
		Total:    summary.Total.Amount.Round(2),
		Currency: summary.Total.Currency.String(),
	}
}
