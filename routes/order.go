package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/ansifmk/AppleCart-ecommerce/controllers/order"
	"github.com/ansifmk/AppleCart-ecommerce/middleware"
)

// SetupOrderRoutes registers the customer-facing order endpoints
// (JWT-protected) and the websocket feed of order updates.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", deps.Hub.Handler)

		authed := orders.Group("", middleware.ValidateToken(deps.JWTSecret))
		{
			authed.GET("/mine", orderControllers.MyOrdersHandler(deps.Lifecycle))
			authed.POST("/place", orderControllers.PlaceOrderHandler(deps.Lifecycle))
			authed.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(deps.Lifecycle))
		}
	}
}
