package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the shape the resource store keeps under /users. Orders are
// embedded (denormalized) under the owning user; there is no top-level
// /orders collection.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsBlock   bool      `json:"isBlock"`
	CreatedAt time.Time `json:"created_at"`
	Orders    []Order   `json:"orders"`
}

// FindOrder returns the index of the order with the given id, or -1.
func (u User) FindOrder(orderID string) int {
	for i, o := range u.Orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}
