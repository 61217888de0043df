package productControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ansifmk/AppleCart-ecommerce/analytics"
	"github.com/ansifmk/AppleCart-ecommerce/models"
	"github.com/ansifmk/AppleCart-ecommerce/store"
)

const defaultCategory = "Smartphone"

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Brand       string   `json:"brand"`
	Count       *int     `json:"count" binding:"required"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"isActive"`
	Highlight   string   `json:"highlight"`
}

func (in ProductInput) toModel() models.Product {
	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Brand:       in.Brand,
		Count:       *in.Count,
		Category:    in.Category,
		Tags:        in.Tags,
		Images:      in.Images,
		IsActive:    true,
		Highlight:   in.Highlight,
	}
	if product.Category == "" {
		product.Category = defaultCategory
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	return product
}

// GET /admin/products
func GetProducts(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := st.ListProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"stats":    analytics.SummarizeProducts(products),
		})
	}
}

// POST /admin/products
func CreateProduct(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if *input.Price < 0 || *input.Count < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price and count must not be negative"})
			return
		}

		product := input.toModel()
		product.CreatedAt = time.Now()

		created, err := st.CreateProduct(c.Request.Context(), product)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// PUT /admin/products/:id
func UpdateProduct(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		existing, _, err := st.GetProduct(c.Request.Context(), productID)
		if err != nil {
			if store.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if *input.Price < 0 || *input.Count < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price and count must not be negative"})
			return
		}

		product := input.toModel()
		product.ID = productID
		product.CreatedAt = existing.CreatedAt

		if err := st.ReplaceProduct(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
func DeleteProduct(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			if store.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
