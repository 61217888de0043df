package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansifmk/AppleCart-ecommerce/lifecycle"
	"github.com/ansifmk/AppleCart-ecommerce/models"
	"github.com/ansifmk/AppleCart-ecommerce/store"
)

func setup(t *testing.T) (*lifecycle.Service, *fakeStore) {
	t.Helper()
	fake := newFakeStore()
	srv := fake.server()
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	client := store.NewClient(srv.URL, 5*time.Second, log)
	return lifecycle.New(client, log), fake
}

func pendingOrder(id string, items ...models.OrderItem) models.Order {
	order := models.Order{
		ID:            id,
		CreatedAt:     time.Now().Add(-time.Hour),
		Status:        models.OrderStatusPending,
		PaymentMethod: "cash",
		Items:         items,
	}
	order.Total = order.ItemsTotal()
	return order
}

func TestCancelOrder(t *testing.T) {
	svc, fake := setup(t)

	order := pendingOrder("o1",
		models.OrderItem{ID: "p1", Name: "iPhone 13", Price: 52000, Quantity: 3},
		models.OrderItem{ID: "p2", Name: "Pixel 8", Price: 61000, Quantity: 1},
	)
	fake.addUser(models.User{ID: "u1", Name: "Anu", Email: "anu@example.com", Orders: []models.Order{order}})
	fake.addProduct(models.Product{ID: "p1", Name: "iPhone 13", Price: 52000, Count: 10})
	fake.addProduct(models.Product{ID: "p2", Name: "Pixel 8", Price: 61000, Count: 5})

	require.NoError(t, svc.CancelOrder(context.Background(), "u1", "o1"))

	assert.Equal(t, 13, fake.products["p1"].Count)
	assert.Equal(t, 6, fake.products["p2"].Count)
	assert.Equal(t, models.OrderStatusCancelled, fake.users["u1"].Orders[0].Status)
}

func TestCancelOrderNonPending(t *testing.T) {
	svc, fake := setup(t)

	order := pendingOrder("o1", models.OrderItem{ID: "p1", Name: "iPhone 13", Price: 52000, Quantity: 2})
	order.Status = models.OrderStatusShipped
	fake.addUser(models.User{ID: "u1", Orders: []models.Order{order}})
	fake.addProduct(models.Product{ID: "p1", Name: "iPhone 13", Price: 52000, Count: 10})

	err := svc.CancelOrder(context.Background(), "u1", "o1")
	assert.ErrorIs(t, err, lifecycle.ErrNotCancellable)

	// no stock change, no status change
	assert.Equal(t, 10, fake.products["p1"].Count)
	assert.Equal(t, models.OrderStatusShipped, fake.users["u1"].Orders[0].Status)
}

func TestCancelOrderUnknown(t *testing.T) {
	svc, fake := setup(t)
	fake.addUser(models.User{ID: "u1"})

	err := svc.CancelOrder(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, lifecycle.ErrOrderNotFound)
}

func TestCancelOrderResumesWithoutDoubleRestore(t *testing.T) {
	svc, fake := setup(t)

	order := pendingOrder("o1",
		models.OrderItem{ID: "p1", Name: "iPhone 13", Price: 52000, Quantity: 3},
		models.OrderItem{ID: "p2", Name: "Pixel 8", Price: 61000, Quantity: 1},
	)
	fake.addUser(models.User{ID: "u1", Orders: []models.Order{order}})
	fake.addProduct(models.Product{ID: "p1", Name: "iPhone 13", Price: 52000, Count: 10})
	fake.addProduct(models.Product{ID: "p2", Name: "Pixel 8", Price: 61000, Count: 5})

	// second item's stock write fails mid-cancel
	fake.failOn("PATCH", "/products/p2")
	err := svc.CancelOrder(context.Background(), "u1", "o1")
	require.Error(t, err)

	// first item committed, order parked as cancelling
	assert.Equal(t, 13, fake.products["p1"].Count)
	assert.Equal(t, 5, fake.products["p2"].Count)
	assert.Equal(t, models.OrderStatusCancelling, fake.users["u1"].Orders[0].Status)
	assert.Equal(t, []string{"p1"}, fake.users["u1"].Orders[0].RestoredItems)

	// retry finishes the job and does not restore p1 again
	fake.clearFailure("PATCH", "/products/p2")
	require.NoError(t, svc.CancelOrder(context.Background(), "u1", "o1"))

	assert.Equal(t, 13, fake.products["p1"].Count)
	assert.Equal(t, 6, fake.products["p2"].Count)
	assert.Equal(t, models.OrderStatusCancelled, fake.users["u1"].Orders[0].Status)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, fake := setup(t)

	fake.addUser(models.User{ID: "u1", Name: "Anu", Orders: []models.Order{pendingOrder("o1")}})
	fake.addUser(models.User{ID: "u2", Name: "Biju", Orders: []models.Order{pendingOrder("o2")}})

	var broadcast []models.Order
	svc.OnOrderUpdate(func(o models.Order) { broadcast = append(broadcast, o) })

	updated, err := svc.UpdateOrderStatus(context.Background(), "o2", models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, models.OrderStatusShipped, fake.users["u2"].Orders[0].Status)
	assert.Equal(t, models.OrderStatusPending, fake.users["u1"].Orders[0].Status)

	require.Len(t, broadcast, 1)
	assert.Equal(t, "o2", broadcast[0].ID)
}

func TestUpdateOrderStatusPermissive(t *testing.T) {
	svc, fake := setup(t)

	order := pendingOrder("o1")
	order.Status = models.OrderStatusDelivered
	fake.addUser(models.User{ID: "u1", Orders: []models.Order{order}})

	// the admin surface may force any known status, even backwards
	updated, err := svc.UpdateOrderStatus(context.Background(), "o1", models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	svc, fake := setup(t)
	fake.addUser(models.User{ID: "u1", Orders: []models.Order{pendingOrder("o1")}})

	_, err := svc.UpdateOrderStatus(context.Background(), "missing", models.OrderStatusShipped)
	assert.ErrorIs(t, err, lifecycle.ErrOrderNotFound)
}

func TestPlaceOrder(t *testing.T) {
	svc, fake := setup(t)

	fake.addUser(models.User{ID: "u1", Name: "Anu"})
	fake.addProduct(models.Product{ID: "p1", Name: "iPhone 13", Price: 52000, Count: 10})
	fake.addProduct(models.Product{ID: "p2", Name: "Pixel 8", Price: 61000, Count: 5})

	order, err := svc.PlaceOrder(context.Background(), "u1", []models.OrderItem{
		{ID: "p1", Quantity: 2},
		{ID: "p2", Quantity: 1},
	}, "upi")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, float64(2*52000+61000), order.Total)
	assert.Equal(t, 8, fake.products["p1"].Count)
	assert.Equal(t, 4, fake.products["p2"].Count)

	require.Len(t, fake.users["u1"].Orders, 1)
	assert.Equal(t, order.ID, fake.users["u1"].Orders[0].ID)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, fake := setup(t)

	fake.addUser(models.User{ID: "u1"})
	fake.addProduct(models.Product{ID: "p1", Name: "iPhone 13", Price: 52000, Count: 1})

	_, err := svc.PlaceOrder(context.Background(), "u1", []models.OrderItem{{ID: "p1", Quantity: 2}}, "cash")
	assert.ErrorIs(t, err, lifecycle.ErrInsufficientStock)
	assert.Empty(t, fake.users["u1"].Orders)
}

func TestPlaceOrderEmpty(t *testing.T) {
	svc, fake := setup(t)
	fake.addUser(models.User{ID: "u1"})

	_, err := svc.PlaceOrder(context.Background(), "u1", nil, "cash")
	assert.ErrorIs(t, err, lifecycle.ErrEmptyOrder)
}
