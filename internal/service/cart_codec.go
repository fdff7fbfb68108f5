package service

import (
	"encoding/json"
	"fmt"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// storedLine is the persisted line schema. Legacy documents carried the product id
// under "id" and sometimes a whole product object; decodeCart accepts both.
type storedLine struct {
	ProductID int64            `json:"productId,omitempty"`
	LegacyID  int64            `json:"id,omitempty"`
	Quantity  int              `json:"quantity"`
	Title     string           `json:"title,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

func encodeCart(cart domain.Cart) (string, error) {
	lines := make([]storedLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, mapLineToStored(line))
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(data), nil
}

// decodeCart drops lines without a usable id, clamps quantities to at least 1 and merges duplicate ids.
func decodeCart(raw string) (domain.Cart, error) {
	var stored []storedLine
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	cart := domain.EmptyCart()
	for _, s := range stored {
		line, ok := mapStoredToLine(s)
		if !ok {
			continue
		}
		cart = cart.AddOrIncrement(line.ProductID, line.Quantity, line.Snapshot)
	}

	return cart, nil
}

func mapLineToStored(line domain.CartLine) storedLine {
	s := storedLine{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
	}

	if line.Snapshot != nil {
		price := line.Snapshot.Price
		s.Title = line.Snapshot.Title
		s.Price = &price
	}

	return s
}

func mapStoredToLine(s storedLine) (domain.CartLine, bool) {
	id := s.ProductID
	if id == 0 {
		id = s.LegacyID
	}
	if id <= 0 {
		return domain.CartLine{}, false
	}

	line := domain.CartLine{
		ProductID: id,
		Quantity:  domain.NormalizeQuantity(s.Quantity),
	}

	if s.Title != "" || s.Price != nil {
		line.Snapshot = &domain.LineSnapshot{Title: s.Title}
		if s.Price != nil {
			line.Snapshot.Price = *s.Price
		}
	}

	return line, true
}
