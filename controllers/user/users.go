package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ansifmk/AppleCart-ecommerce/store"
)

type BlockUserRequest struct {
	IsBlock *bool `json:"isBlock" binding:"required"`
}

// GET /admin/users
func GetAllUsers(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := st.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PATCH /admin/users/:id/block
func BlockUser(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BlockUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := st.SetUserBlocked(c.Request.Context(), c.Param("id"), *req.IsBlock); err != nil {
			if store.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
	}
}

// DELETE /admin/users/:id
func DeleteUser(st *store.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			if store.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
