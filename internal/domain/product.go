package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Brand              string          `json:"brand,omitempty"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage float64         `json:"discountPercentage,omitempty"`
	Rating             float64         `json:"rating,omitempty"`
	Stock              int             `json:"stock"`
	Thumbnail          string          `json:"thumbnail"`
}

type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

func (p Product) Snapshot() *LineSnapshot {
	return &LineSnapshot{Title: p.Title, Price: p.Price}
}
