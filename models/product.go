package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Brand       string    `json:"brand"`
	Count       int       `json:"count"` // units in stock
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	IsActive    bool      `json:"isActive"`
	Highlight   string    `json:"highlight,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LowStockThreshold is the stock level below which a product is surfaced as
// low stock on the admin product dashboard.
const LowStockThreshold = 5

func (p Product) LowStock() bool {
	return p.Count < LowStockThreshold
}
