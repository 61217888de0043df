package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ansifmk/AppleCart-ecommerce/analytics"
	"github.com/ansifmk/AppleCart-ecommerce/config"
	orderControllers "github.com/ansifmk/AppleCart-ecommerce/controllers/order"
	"github.com/ansifmk/AppleCart-ecommerce/lifecycle"
	"github.com/ansifmk/AppleCart-ecommerce/routes"
	"github.com/ansifmk/AppleCart-ecommerce/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.Println("✅ Starting admin API...")

	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config load failed: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("❌ Invalid DASHBOARD_TZ: %v", err)
	}

	st := store.NewClient(cfg.StoreBaseURL, cfg.StoreTimeout, log)
	svc := lifecycle.New(st, log)

	hub := orderControllers.NewHub()
	svc.OnOrderUpdate(hub.Broadcast)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Store:     st,
		Lifecycle: svc,
		Hub:       hub,
		JWTSecret: cfg.JWTSecret,
		AdminKey:  cfg.AdminAPIKey,
		Location:  loc,
	})

	// Log an hourly business snapshot
	go logSnapshotHourly(st, loc, log)

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// logSnapshotHourly recomputes the dashboard totals every hour and logs
// them, so the business numbers show up in the server logs without anyone
// opening the dashboard.
func logSnapshotHourly(st *store.Client, loc *time.Location, log *logrus.Logger) {
	for {
		time.Sleep(time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		users, err := st.ListUsers(ctx)
		if err != nil {
			cancel()
			log.WithError(err).Warn("snapshot: failed to fetch users")
			continue
		}
		products, err := st.ListProducts(ctx)
		cancel()
		if err != nil {
			log.WithError(err).Warn("snapshot: failed to fetch products")
			continue
		}

		dash := analytics.BuildDashboard(users, products, time.Now(), loc)
		log.WithFields(logrus.Fields{
			"users":    dash.TotalUsers,
			"products": dash.TotalProducts,
			"orders":   dash.TotalOrders,
			"revenue":  dash.TotalRevenue,
		}).Info("business snapshot")
	}
}
