package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansifmk/AppleCart-ecommerce/analytics"
	"github.com/ansifmk/AppleCart-ecommerce/models"
)

func sampleUsers() []models.User {
	now := time.Now()
	return []models.User{
		{ID: "u1", Name: "Anu Varghese", Email: "anu@example.com", Orders: []models.Order{
			orderOn(now, 1200, models.OrderStatusShipped),
			orderOn(now.Add(time.Minute), 800, models.OrderStatusPending),
		}},
		{ID: "u2", Name: "Biju Menon", Email: "biju@example.com", Orders: []models.Order{
			orderOn(now.Add(2*time.Minute), 3000, models.OrderStatusDelivered),
		}},
	}
}

func TestFlattenOrdersJoinsCustomer(t *testing.T) {
	rows := analytics.FlattenOrders(sampleUsers())
	require.Len(t, rows, 3)

	assert.Equal(t, "Anu Varghese", rows[0].CustomerName)
	assert.Equal(t, "anu@example.com", rows[0].CustomerEmail)
	assert.Equal(t, "Biju Menon", rows[2].CustomerName)
}

func TestFilterOrders(t *testing.T) {
	rows := analytics.FlattenOrders(sampleUsers())

	byName := analytics.FilterOrders(rows, "biju", "")
	require.Len(t, byName, 1)
	assert.Equal(t, "Biju Menon", byName[0].CustomerName)

	byStatus := analytics.FilterOrders(rows, "", models.OrderStatusPending)
	require.Len(t, byStatus, 1)
	assert.Equal(t, models.OrderStatusPending, byStatus[0].Status)

	both := analytics.FilterOrders(rows, "anu", models.OrderStatusDelivered)
	assert.Empty(t, both)

	everything := analytics.FilterOrders(rows, "", "")
	assert.Len(t, everything, 3)
}

func TestSummarizeOrders(t *testing.T) {
	summary := analytics.SummarizeOrders(analytics.FlattenOrders(sampleUsers()))

	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 5000.0, summary.TotalRevenue)
	assert.Equal(t, 1, summary.Shipped)
	assert.Equal(t, 1, summary.Delivered)

	total := 0
	for _, n := range summary.Distribution {
		total += n
	}
	assert.Equal(t, summary.TotalOrders, total)
}

func TestSummarizeProducts(t *testing.T) {
	stats := analytics.SummarizeProducts([]models.Product{
		{ID: "p1", Price: 100, Count: 10},
		{ID: "p2", Price: 250, Count: 2}, // low stock
		{ID: "p3", Price: 50, Count: 0},  // low stock
	})

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 100*10+250*2+50*0.0, stats.InventoryValue)
	assert.Equal(t, 2, stats.LowStock)
}
