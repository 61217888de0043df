package analytics

import "github.com/ansifmk/AppleCart-ecommerce/models"

// ProductStats heads the product-management screen.
type ProductStats struct {
	TotalProducts  int     `json:"totalProducts"`
	InventoryValue float64 `json:"inventoryValue"` // sum of price * stock
	LowStock       int     `json:"lowStockCount"`
}

func SummarizeProducts(products []models.Product) ProductStats {
	var stats ProductStats
	stats.TotalProducts = len(products)
	for _, p := range products {
		stats.InventoryValue += p.Price * float64(p.Count)
		if p.LowStock() {
			stats.LowStock++
		}
	}
	return stats
}
