package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/ansifmk/AppleCart-ecommerce/analytics"
	"github.com/ansifmk/AppleCart-ecommerce/lifecycle"
	"github.com/ansifmk/AppleCart-ecommerce/models"
	"github.com/ansifmk/AppleCart-ecommerce/store"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PlaceOrderRequest struct {
	Items         []PlaceOrderItem `json:"items" binding:"required"`
	PaymentMethod string           `json:"payment_method"`
}

type PlaceOrderItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// -------- Handlers --------

// MyOrdersHandler lists the calling user's orders.
func MyOrdersHandler(svc *lifecycle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		orders, err := svc.OrdersForUser(c.Request.Context(), userID)
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// CancelOrderHandler cancels one of the calling user's pending orders.
func CancelOrderHandler(svc *lifecycle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		if err := svc.CancelOrder(c.Request.Context(), userID, orderID); err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
	}
}

// PlaceOrderHandler creates a new order for the calling user.
func PlaceOrderHandler(svc *lifecycle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{ID: item.ProductID, Quantity: item.Quantity})
		}

		order, err := svc.PlaceOrder(c.Request.Context(), c.GetString("user_id"), items, req.PaymentMethod)
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GetAllOrdersHandler serves the order-management screen: all orders joined
// with their customers, with optional ?q= search and ?status= filter, plus
// the summary stats computed over the unfiltered set.
func GetAllOrdersHandler(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var status models.OrderStatus
		if raw := c.Query("status"); raw != "" && raw != "all" {
			parsed, err := models.ParseOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status = parsed
		}

		users, err := st.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch orders"})
			return
		}

		rows := analytics.FlattenOrders(users)
		c.JSON(http.StatusOK, gin.H{
			"orders":  analytics.FilterOrders(rows, c.Query("q"), status),
			"summary": analytics.SummarizeOrders(rows),
		})
	}
}

// UpdateOrderStatusHandler forces an order status (admin surface). Any known
// status is accepted regardless of the current one.
func UpdateOrderStatusHandler(svc *lifecycle.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.UpdateOrderStatus(c.Request.Context(), orderID, newStatus)
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// respondLifecycleError maps service failures onto HTTP answers. Store
// failures surface as 502 since this server only fronts the data store.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrOrderNotFound) || store.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, lifecycle.ErrNotCancellable):
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending orders can be cancelled"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Record changed, retry the operation"})
	case errors.Is(err, lifecycle.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Data store request failed"})
	}
}
