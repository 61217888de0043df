package store

import (
	"context"

	"github.com/ansifmk/AppleCart-ecommerce/models"
)

// ListUsers fetches every user with their embedded orders.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user. The second result is the record's ETag ("" when
// the store does not version records); pass it back to the write methods to
// get conditional-write protection.
func (c *Client) GetUser(ctx context.Context, id string) (models.User, string, error) {
	var user models.User
	etag, err := c.get(ctx, "/users/"+id, &user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, etag, nil
}

// UpdateUserOrders rewrites the user's full embedded order list.
func (c *Client) UpdateUserOrders(ctx context.Context, id string, orders []models.Order, ifMatch string) error {
	return c.patch(ctx, "/users/"+id, ifMatch, map[string]interface{}{"orders": orders})
}

// ReplaceUser writes the full user record.
func (c *Client) ReplaceUser(ctx context.Context, user models.User, ifMatch string) error {
	return c.put(ctx, "/users/"+user.ID, ifMatch, user)
}

// SetUserBlocked flips the account block flag.
func (c *Client) SetUserBlocked(ctx context.Context, id string, blocked bool) error {
	return c.patch(ctx, "/users/"+id, "", map[string]interface{}{"isBlock": blocked})
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+id)
}
