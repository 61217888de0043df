// Package lifecycle drives order status transitions: placing orders,
// cancelling them with stock restoration, and the admin status override.
package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ansifmk/AppleCart-ecommerce/models"
	"github.com/ansifmk/AppleCart-ecommerce/store"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotCancellable    = errors.New("only pending orders can be cancelled")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyOrder        = errors.New("order has no items")
)

type Service struct {
	store  *store.Client
	log    *logrus.Entry
	notify func(models.Order)
}

func New(st *store.Client, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		store:  st,
		log:    log.WithField("component", "lifecycle"),
		notify: func(models.Order) {},
	}
}

// OnOrderUpdate registers a hook invoked after every persisted status
// change. Used to fan updates out to websocket subscribers.
func (s *Service) OnOrderUpdate(fn func(models.Order)) {
	if fn != nil {
		s.notify = fn
	}
}

// OrdersForUser returns the user's embedded order list.
func (s *Service) OrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	user, _, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Orders, nil
}

// CancelOrder cancels a pending order and returns its items to stock.
//
// The stock writes and the status write are separate commits against the
// store, so the whole thing cannot be atomic. Instead it runs in two phases:
// the order is first marked cancelling, then each item is restored and
// recorded in restoredItems one commit at a time, and only then is the order
// marked cancelled. A crash mid-way leaves a cancelling order that a retry
// resumes without restoring any item twice.
func (s *Service) CancelOrder(ctx context.Context, userID, orderID string) error {
	user, etag, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	idx := user.FindOrder(orderID)
	if idx < 0 {
		return errors.Wrap(ErrOrderNotFound, orderID)
	}

	switch user.Orders[idx].Status {
	case models.OrderStatusPending:
		user.Orders[idx].Status = models.OrderStatusCancelling
		user, etag, err = s.commitOrders(ctx, user, etag)
		if err != nil {
			return errors.Wrap(err, "mark order cancelling")
		}
	case models.OrderStatusCancelling:
		// resuming an interrupted cancel
	default:
		return errors.Wrapf(ErrNotCancellable, "order %s is %s", orderID, user.Orders[idx].Status)
	}

	for _, item := range user.Orders[idx].Items {
		if user.Orders[idx].StockRestored(item.ID) {
			continue
		}

		product, productETag, err := s.store.GetProduct(ctx, item.ID)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"order":   orderID,
				"product": item.ID,
			}).Warn("cancel aborted mid-restore; order left cancelling for retry")
			return errors.Wrapf(err, "read product %s", item.ID)
		}
		if err := s.store.SetProductCount(ctx, item.ID, product.Count+item.Quantity, productETag); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"order":   orderID,
				"product": item.ID,
			}).Warn("cancel aborted mid-restore; order left cancelling for retry")
			return errors.Wrapf(err, "restore stock for product %s", item.ID)
		}

		user.Orders[idx].RestoredItems = append(user.Orders[idx].RestoredItems, item.ID)
		user, etag, err = s.commitOrders(ctx, user, etag)
		if err != nil {
			return errors.Wrapf(err, "record restored item %s", item.ID)
		}
	}

	user.Orders[idx].Status = models.OrderStatusCancelled
	if err := s.store.UpdateUserOrders(ctx, userID, user.Orders, etag); err != nil {
		return errors.Wrap(err, "mark order cancelled")
	}

	s.log.WithFields(logrus.Fields{
		"user":  userID,
		"order": orderID,
		"items": len(user.Orders[idx].Items),
	}).Info("order cancelled, stock restored")
	s.notify(user.Orders[idx])
	return nil
}

// commitOrders persists the order list and re-reads the user so the next
// conditional write carries a fresh ETag.
func (s *Service) commitOrders(ctx context.Context, user models.User, etag string) (models.User, string, error) {
	if err := s.store.UpdateUserOrders(ctx, user.ID, user.Orders, etag); err != nil {
		return user, "", err
	}
	fresh, freshETag, err := s.store.GetUser(ctx, user.ID)
	if err != nil {
		return user, "", err
	}
	return fresh, freshETag, nil
}

// UpdateOrderStatus forces an order to the given status (admin surface).
// The owning user is found by scanning all users, since orders live embedded
// under their owner. Any known status is accepted; the customer-flow graph
// in models.OrderStatus.NextStatuses is deliberately not enforced here.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, next models.OrderStatus) (models.Order, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return models.Order{}, err
	}

	for _, candidate := range users {
		if candidate.FindOrder(orderID) < 0 {
			continue
		}

		// re-read the owner so the full-record write is conditional
		user, etag, err := s.store.GetUser(ctx, candidate.ID)
		if err != nil {
			return models.Order{}, err
		}
		idx := user.FindOrder(orderID)
		if idx < 0 {
			return models.Order{}, errors.Wrap(ErrOrderNotFound, orderID)
		}

		user.Orders[idx].Status = next
		if err := s.store.ReplaceUser(ctx, user, etag); err != nil {
			return models.Order{}, errors.Wrap(err, "persist order status")
		}

		s.log.WithFields(logrus.Fields{
			"order":  orderID,
			"status": next,
		}).Info("order status updated")
		s.notify(user.Orders[idx])
		return user.Orders[idx], nil
	}

	return models.Order{}, errors.Wrap(ErrOrderNotFound, orderID)
}

// PlaceOrder creates a pending order from the requested quantities,
// deducting stock per product. Item snapshots (name, price, images) are
// taken from the live products at purchase time.
func (s *Service) PlaceOrder(ctx context.Context, userID string, requested []models.OrderItem, paymentMethod string) (models.Order, error) {
	if len(requested) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	user, etag, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}

	var items []models.OrderItem
	for _, req := range requested {
		quantity := req.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		product, productETag, err := s.store.GetProduct(ctx, req.ID)
		if err != nil {
			return models.Order{}, errors.Wrapf(err, "read product %s", req.ID)
		}
		if product.Count < quantity {
			return models.Order{}, errors.Wrap(ErrInsufficientStock, product.Name)
		}
		if err := s.store.SetProductCount(ctx, req.ID, product.Count-quantity, productETag); err != nil {
			return models.Order{}, errors.Wrapf(err, "deduct stock for product %s", req.ID)
		}

		items = append(items, models.OrderItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: quantity,
			Images:   product.Images,
		})
	}

	order := models.Order{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now(),
		Status:        models.OrderStatusPending,
		PaymentMethod: paymentMethod,
		Items:         items,
	}
	order.Total = order.ItemsTotal()

	if err := s.store.UpdateUserOrders(ctx, userID, append(user.Orders, order), etag); err != nil {
		return models.Order{}, errors.Wrap(err, "persist new order")
	}

	s.log.WithFields(logrus.Fields{
		"user":  userID,
		"order": order.ID,
		"total": order.Total,
	}).Info("order placed")
	s.notify(order)
	return order, nil
}
