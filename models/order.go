package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Accepted, being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCompleted  OrderStatus = "completed"  // Closed after delivery
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before shipping

	// OrderStatusCancelling marks an order whose cancellation is in flight:
	// stock restoration has started but the final cancelled write has not
	// landed yet. A crashed cancel is resumed from this state.
	OrderStatusCancelling OrderStatus = "cancelling"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps a request string to a known status.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusProcessing):
		return OrderStatusProcessing, nil
	case string(OrderStatusShipped):
		return OrderStatusShipped, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	case string(OrderStatusCompleted):
		return OrderStatusCompleted, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	case string(OrderStatusCancelling):
		return OrderStatusCancelling, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// Terminal reports whether no further transitions are expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCompleted || s == OrderStatusCancelled
}

// NextStatuses is the intended customer-flow transition graph. The admin
// surface deliberately ignores it (any known status may be forced); only the
// user-facing cancel path enforces its own precondition.
func (s OrderStatus) NextStatuses() []OrderStatus {
	switch s {
	case OrderStatusPending:
		return []OrderStatus{OrderStatusProcessing, OrderStatusCancelled}
	case OrderStatusProcessing:
		return []OrderStatus{OrderStatusShipped, OrderStatusCancelled}
	case OrderStatusShipped:
		return []OrderStatus{OrderStatusDelivered}
	case OrderStatusDelivered:
		return []OrderStatus{OrderStatusCompleted}
	default:
		return nil
	}
}

type Order struct {
	ID            string      `json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	Status        OrderStatus `json:"status"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"` // e.g. "cash", "upi"
	Items         []OrderItem `json:"items"`

	// RestoredItems lists item ids whose stock has already been returned by
	// an in-flight cancellation. Persisted with the cancelling write so a
	// retried cancel never restores the same item twice.
	RestoredItems []string `json:"restoredItems,omitempty"`
}

// OrderItem is a snapshot of the product at purchase time. ID references the
// product, but name and price stay frozen even if the product changes later.
type OrderItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
	Images   []string `json:"images,omitempty"`
}

// ItemsTotal recomputes the order total from its line items.
func (o Order) ItemsTotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// StockRestored reports whether the given item id was already refunded to
// inventory by a previous cancel attempt.
func (o Order) StockRestored(itemID string) bool {
	for _, id := range o.RestoredItems {
		if id == itemID {
			return true
		}
	}
	return false
}
