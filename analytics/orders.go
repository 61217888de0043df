package analytics

import (
	"strings"

	"github.com/ansifmk/AppleCart-ecommerce/models"
)

// AdminOrder is an order joined with its customer, the row shape of the
// order-management table.
type AdminOrder struct {
	models.Order
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// OrdersSummary heads the order-management screen.
type OrdersSummary struct {
	TotalOrders  int                        `json:"totalOrders"`
	TotalRevenue float64                    `json:"totalRevenue"`
	Shipped      int                        `json:"shippedOrders"`
	Delivered    int                        `json:"deliveredOrders"`
	Distribution map[models.OrderStatus]int `json:"orderDistribution"`
}

// FlattenOrders joins every embedded order with the owning user's name and
// email, preserving user order then order order.
func FlattenOrders(users []models.User) []AdminOrder {
	var rows []AdminOrder
	for _, user := range users {
		for _, order := range user.Orders {
			rows = append(rows, AdminOrder{
				Order:         order,
				CustomerName:  user.Name,
				CustomerEmail: user.Email,
			})
		}
	}
	return rows
}

// FilterOrders narrows rows by free-text search over customer name, customer
// email and order id, and by exact status. Empty arguments match everything.
func FilterOrders(rows []AdminOrder, query string, status models.OrderStatus) []AdminOrder {
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]AdminOrder, 0, len(rows))
	for _, row := range rows {
		if query != "" &&
			!strings.Contains(strings.ToLower(row.CustomerName), query) &&
			!strings.Contains(strings.ToLower(row.CustomerEmail), query) &&
			!strings.Contains(strings.ToLower(row.ID), query) {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// SummarizeOrders computes the header stats over the full (unfiltered)
// order set.
func SummarizeOrders(rows []AdminOrder) OrdersSummary {
	summary := OrdersSummary{Distribution: make(map[models.OrderStatus]int)}
	for _, row := range rows {
		summary.TotalOrders++
		summary.TotalRevenue += row.Total
		switch row.Status {
		case models.OrderStatusShipped:
			summary.Shipped++
		case models.OrderStatusDelivered:
			summary.Delivered++
		}
		status := row.Status
		if status == "" {
			status = models.OrderStatusPending
		}
		summary.Distribution[status]++
	}
	return summary
}
