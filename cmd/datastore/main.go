// Command datastore is a reference implementation of the JSON resource store
// the admin API talks to: /users records with embedded orders and /products.
// It exists so the system runs end-to-end locally without a hosted store.
// Records carry a version counter surfaced as an ETag; writes with a stale
// If-Match are refused with 412.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ansifmk/AppleCart-ecommerce/models"
)

type UserRecord struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Email     string `gorm:"uniqueIndex"`
	Role      string
	IsBlock   bool
	CreatedAt time.Time
	Orders    []models.Order `gorm:"serializer:json"`
	Version   int
}

func (r UserRecord) toUser() models.User {
	return models.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      models.Role(r.Role),
		IsBlock:   r.IsBlock,
		CreatedAt: r.CreatedAt,
		Orders:    r.Orders,
	}
}

type ProductRecord struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description string
	Price       float64
	Brand       string
	Count       int
	Category    string
	Tags        []string `gorm:"serializer:json"`
	Images      []string `gorm:"serializer:json"`
	IsActive    bool
	Highlight   string
	CreatedAt   time.Time
	Version     int
}

func (r ProductRecord) toProduct() models.Product {
	return models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Brand:       r.Brand,
		Count:       r.Count,
		Category:    r.Category,
		Tags:        r.Tags,
		Images:      r.Images,
		IsActive:    r.IsActive,
		Highlight:   r.Highlight,
		CreatedAt:   r.CreatedAt,
	}
}

func fromProduct(p models.Product) ProductRecord {
	return ProductRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Brand:       p.Brand,
		Count:       p.Count,
		Category:    p.Category,
		Tags:        p.Tags,
		Images:      p.Images,
		IsActive:    p.IsActive,
		Highlight:   p.Highlight,
		CreatedAt:   p.CreatedAt,
	}
}

func main() {
	log := logrus.New()
	log.Println("✅ Starting datastore...")

	_ = godotenv.Load()

	db := initDatabase(log)
	if err := db.AutoMigrate(&UserRecord{}, &ProductRecord{}); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	r := gin.Default()
	registerUserRoutes(r, db)
	registerProductRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("🚀 Datastore running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start datastore: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(log *logrus.Logger) *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// checkMatch enforces If-Match against the record's version counter.
func checkMatch(c *gin.Context, version int) bool {
	ifMatch := c.GetHeader("If-Match")
	if ifMatch == "" {
		return true
	}
	if ifMatch != strconv.Itoa(version) {
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": "version mismatch"})
		return false
	}
	return true
}

func registerUserRoutes(r *gin.Engine, db *gorm.DB) {
	users := r.Group("/users")

	users.GET("", func(c *gin.Context) {
		var records []UserRecord
		if err := db.Order("created_at").Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]models.User, 0, len(records))
		for _, rec := range records {
			out = append(out, rec.toUser())
		}
		c.JSON(http.StatusOK, out)
	})

	users.GET("/:id", func(c *gin.Context) {
		var rec UserRecord
		if err := db.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.Header("ETag", strconv.Itoa(rec.Version))
		c.JSON(http.StatusOK, rec.toUser())
	})

	type userPatch struct {
		Name    *string         `json:"name"`
		Role    *string         `json:"role"`
		IsBlock *bool           `json:"isBlock"`
		Orders  *[]models.Order `json:"orders"`
	}

	users.PATCH("/:id", func(c *gin.Context) {
		var patch userPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rec UserRecord
		if err := db.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if !checkMatch(c, rec.Version) {
			return
		}

		if patch.Name != nil {
			rec.Name = *patch.Name
		}
		if patch.Role != nil {
			rec.Role = *patch.Role
		}
		if patch.IsBlock != nil {
			rec.IsBlock = *patch.IsBlock
		}
		if patch.Orders != nil {
			rec.Orders = *patch.Orders
		}
		rec.Version++

		if err := db.Save(&rec).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("ETag", strconv.Itoa(rec.Version))
		c.JSON(http.StatusOK, rec.toUser())
	})

	users.PUT("/:id", func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rec UserRecord
		if err := db.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if !checkMatch(c, rec.Version) {
			return
		}

		rec.Name = user.Name
		rec.Email = user.Email
		rec.Role = string(user.Role)
		rec.IsBlock = user.IsBlock
		rec.Orders = user.Orders
		rec.Version++

		if err := db.Save(&rec).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("ETag", strconv.Itoa(rec.Version))
		c.JSON(http.StatusOK, rec.toUser())
	})

	users.POST("", func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now()
		}
		rec := UserRecord{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      string(user.Role),
			IsBlock:   user.IsBlock,
			CreatedAt: user.CreatedAt,
			Orders:    user.Orders,
			Version:   1,
		}
		if err := db.Create(&rec).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rec.toUser())
	})

	users.DELETE("/:id", func(c *gin.Context) {
		res := db.Delete(&UserRecord{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	})
}

func registerProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")

	products.GET("", func(c *gin.Context) {
		var records []ProductRecord
		if err := db.Order("created_at").Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]models.Product, 0, len(records))
		for _, rec := range records {
			out = append(out, rec.toProduct())
		}
		c.JSON(http.StatusOK, out)
	})

	products.GET("/:id", func(c *gin.Context) {
		var rec ProductRecord
		if err := db.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.Header("ETag", strconv.Itoa(rec.Version))
		c.JSON(http.StatusOK, rec.toProduct())
	})

	products.POST("", func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		if product.CreatedAt.IsZero() {
			product.CreatedAt = time.Now()
		}
		rec := fromProduct(product)
		rec.Version = 1
		if err := db.Create(&rec).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rec.toProduct())
	})

	type productPatch struct {
		Count    *int     `json:"count"`
		Price    *float64 `json:"price"`
		IsActive *bool    `json:"isActive"`
	}

	products.PATCH("/:id", func(c *gin.Context) {
		var patch productPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rec ProductRecord
		if err := db.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if !checkMatch(c, rec.Version) {
			return
		}

		if patch.Count != nil {
			rec.Count = *patch.Count
		}
		if patch.Price != nil {
			rec.Price = *patch.Price
		}
		if patch.IsActive != nil {
			rec.IsActive = *patch.IsActive
		}
		rec.Version++

		if err := db.Save(&rec).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("ETag", strconv.Itoa(rec.Version))
		c.JSON(http.StatusOK, rec.toProduct())
	})

	products.PUT("/:id", func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var rec ProductRecord
		if err := db.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if !checkMatch(c, rec.Version) {
			return
		}

		product.ID = rec.ID
		updated := fromProduct(product)
		updated.Version = rec.Version + 1
		if err := db.Save(&updated).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("ETag", strconv.Itoa(updated.Version))
		c.JSON(http.StatusOK, updated.toProduct())
	})

	products.DELETE("/:id", func(c *gin.Context) {
		res := db.Delete(&ProductRecord{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	})
}
