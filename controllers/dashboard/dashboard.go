package dashboardControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ansifmk/AppleCart-ecommerce/analytics"
	"github.com/ansifmk/AppleCart-ecommerce/store"
)

// GetDashboard recomputes the full dashboard snapshot from the current user
// and product collections. Nothing is cached between refreshes.
func GetDashboard(st *store.Client, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		users, err := st.ListUsers(ctx)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch users"})
			return
		}
		products, err := st.ListProducts(ctx)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, analytics.BuildDashboard(users, products, time.Now(), loc))
	}
}
