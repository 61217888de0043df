// Package analytics derives the admin dashboard metrics from the raw user
// and product collections. Every function is a pure projection: inputs are
// never mutated, and everything is recomputed from scratch on each refresh.
package analytics

import (
	"sort"
	"time"

	"github.com/ansifmk/AppleCart-ecommerce/models"
)

// dateKey is the calendar-date grouping key. Dates are taken in a single
// configured location so the trend buckets are consistent across restarts.
const dateKey = "2006-01-02"

type TrendPoint struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"` // in thousands
}

type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Dashboard struct {
	TotalUsers      int                        `json:"totalUsers"`
	TotalProducts   int                        `json:"totalProducts"`
	TotalOrders     int                        `json:"totalOrders"`
	TotalRevenue    float64                    `json:"totalRevenue"`
	OrdersByStatus  map[models.OrderStatus]int `json:"ordersByStatus"`
	OrderTrend      []TrendPoint               `json:"orderTrend"`
	RevenueTrend    []RevenuePoint             `json:"revenueTrend"`
	TopSellingToday []ProductSales             `json:"topSellingToday"`
	TopSellingWeek  []ProductSales             `json:"topSellingWeek"`
}

// BuildDashboard computes the full dashboard snapshot. now anchors the
// today/last-7-days windows; loc picks the calendar used for date grouping
// (nil means time.Local).
func BuildDashboard(users []models.User, products []models.Product, now time.Time, loc *time.Location) Dashboard {
	if loc == nil {
		loc = time.Local
	}
	orders := AllOrders(users)
	return Dashboard{
		TotalUsers:      len(users),
		TotalProducts:   len(products),
		TotalOrders:     len(orders),
		TotalRevenue:    TotalRevenue(orders),
		OrdersByStatus:  CountByStatus(orders),
		OrderTrend:      OrderTrend(orders, loc),
		RevenueTrend:    RevenueTrend(orders, loc),
		TopSellingToday: TopSellingOn(orders, now, loc),
		TopSellingWeek:  TopSellingSince(orders, now.AddDate(0, 0, -7)),
	}
}

// AllOrders flattens every user's embedded order list.
func AllOrders(users []models.User) []models.Order {
	var orders []models.Order
	for _, user := range users {
		orders = append(orders, user.Orders...)
	}
	return orders
}

func TotalRevenue(orders []models.Order) float64 {
	var total float64
	for _, order := range orders {
		total += order.Total
	}
	return total
}

// CountByStatus buckets orders by status. A missing status counts as
// pending, matching how unlabelled records are displayed.
func CountByStatus(orders []models.Order) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int)
	for _, order := range orders {
		status := order.Status
		if status == "" {
			status = models.OrderStatusPending
		}
		counts[status]++
	}
	return counts
}

// OrderTrend counts orders per calendar date, ascending by date.
func OrderTrend(orders []models.Order, loc *time.Location) []TrendPoint {
	byDate := make(map[string]int)
	for _, order := range orders {
		byDate[order.CreatedAt.In(loc).Format(dateKey)]++
	}

	trend := make([]TrendPoint, 0, len(byDate))
	for date, count := range byDate {
		trend = append(trend, TrendPoint{Date: date, Orders: count})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}

// RevenueTrend sums order totals per calendar date, expressed in thousands,
// ascending by date.
func RevenueTrend(orders []models.Order, loc *time.Location) []RevenuePoint {
	byDate := make(map[string]float64)
	for _, order := range orders {
		byDate[order.CreatedAt.In(loc).Format(dateKey)] += order.Total
	}

	trend := make([]RevenuePoint, 0, len(byDate))
	for date, revenue := range byDate {
		trend = append(trend, RevenuePoint{Date: date, Revenue: revenue / 1000})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}

// TopSellingOn ranks products sold on the given calendar day.
func TopSellingOn(orders []models.Order, day time.Time, loc *time.Location) []ProductSales {
	y, m, d := day.In(loc).Date()
	return topSelling(orders, func(created time.Time) bool {
		oy, om, od := created.In(loc).Date()
		return oy == y && om == m && od == d
	})
}

// TopSellingSince ranks products sold in orders created at or after from.
func TopSellingSince(orders []models.Order, from time.Time) []ProductSales {
	return topSelling(orders, func(created time.Time) bool {
		return !created.Before(from)
	})
}

// topSelling groups item quantities by product name over the matching
// orders, sorted descending by quantity, truncated to the top five. The sort
// is stable: ties keep first-encountered order. Grouping is by display name,
// so two distinct products sharing a name merge into one row.
func topSelling(orders []models.Order, match func(time.Time) bool) []ProductSales {
	index := make(map[string]int)
	var sales []ProductSales
	for _, order := range orders {
		if !match(order.CreatedAt) {
			continue
		}
		for _, item := range order.Items {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			if i, ok := index[item.Name]; ok {
				sales[i].Quantity += quantity
				continue
			}
			index[item.Name] = len(sales)
			sales = append(sales, ProductSales{Name: item.Name, Quantity: quantity})
		}
	}

	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Quantity > sales[j].Quantity })
	if len(sales) > 5 {
		sales = sales[:5]
	}
	return sales
}
