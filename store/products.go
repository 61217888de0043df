package store

import (
	"context"

	"github.com/ansifmk/AppleCart-ecommerce/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Product, string, error) {
	var product models.Product
	etag, err := c.get(ctx, "/products/"+id, &product)
	if err != nil {
		return models.Product{}, "", err
	}
	return product, etag, nil
}

// SetProductCount writes the stock counter alone.
func (c *Client) SetProductCount(ctx context.Context, id string, count int, ifMatch string) error {
	return c.patch(ctx, "/products/"+id, ifMatch, map[string]interface{}{"count": count})
}

func (c *Client) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	var created models.Product
	if err := c.post(ctx, "/products", product, &created); err != nil {
		return models.Product{}, err
	}
	return created, nil
}

func (c *Client) ReplaceProduct(ctx context.Context, product models.Product) error {
	return c.put(ctx, "/products/"+product.ID, "", product)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+id)
}
