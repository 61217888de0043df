package routes

import (
	"github.com/gin-gonic/gin"

	dashboardControllers "github.com/ansifmk/AppleCart-ecommerce/controllers/dashboard"
	orderControllers "github.com/ansifmk/AppleCart-ecommerce/controllers/order"
	productControllers "github.com/ansifmk/AppleCart-ecommerce/controllers/product"
	userControllers "github.com/ansifmk/AppleCart-ecommerce/controllers/user"
	"github.com/ansifmk/AppleCart-ecommerce/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key
// middleware.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(deps.AdminKey))
	{
		adminGroup.GET("/dashboard", dashboardControllers.GetDashboard(deps.Store, deps.Location))

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(deps.Store))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(deps.Lifecycle))
		}

		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsers(deps.Store))
			userAdmin.PATCH("/:id/block", userControllers.BlockUser(deps.Store))
			userAdmin.DELETE("/:id", userControllers.DeleteUser(deps.Store))
		}

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productControllers.GetProducts(deps.Store))
			productAdmin.POST("", productControllers.CreateProduct(deps.Store))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(deps.Store))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(deps.Store))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(deps.Store))
		}
	}
}
