package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	orderControllers "github.com/ansifmk/AppleCart-ecommerce/controllers/order"
	"github.com/ansifmk/AppleCart-ecommerce/lifecycle"
	"github.com/ansifmk/AppleCart-ecommerce/store"
)

// Deps carries everything the route groups need.
type Deps struct {
	Store     *store.Client
	Lifecycle *lifecycle.Service
	Hub       *orderControllers.Hub
	JWTSecret string
	AdminKey  string
	Location  *time.Location // calendar used for dashboard date grouping
}

// SetupRoutes is the single entry-point that wires up the order and admin
// route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupOrderRoutes(r, deps)
	SetupAdminRoutes(r, deps)
}
