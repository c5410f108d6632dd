package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avkuzmin/shop-backend/internal/models"
	"github.com/avkuzmin/shop-backend/internal/mykafka"
	"github.com/avkuzmin/shop-backend/internal/repo"
	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/pkg/logging"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

// statusTransitions lists the legal moves; cancelled and delivered are
// terminal and have no entry.
var statusTransitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusShipped: {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

func validStatus(s string) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

func (s *OrderService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "order_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

// PlaceOrder creates the order, its items and its delivery address while
// decrementing stock, all inside one transaction. Nothing persists when any
// step fails.
func (s *OrderService) PlaceOrder(ctx context.Context, buyerID uuid.UUID, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order items required", ErrValidation)
	}

	seen := make(map[uint]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID == 0 {
			return nil, fmt.Errorf("%w: product id required", ErrValidation)
		}
		if item.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, fmt.Errorf("%w: product already exists in your order", ErrConflict)
		}
		seen[item.ProductID] = struct{}{}
	}

	buyer, err := s.Repo.GetUserByID(ctx, buyerID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: buyer not found", ErrUnauthorized)
		}
		return nil, err
	}
	if !buyer.IsConfirmedEmail {
		return nil, fmt.Errorf("%w: email is not confirmed", ErrPermission)
	}

	if req.UseNewAddress {
		if req.DeliveryAddress == nil || req.DeliveryAddress.City == "" || req.DeliveryAddress.StreetAddress == "" {
			return nil, fmt.Errorf("%w: incomplete delivery address", ErrValidation)
		}
	} else if !buyer.Address.Complete() {
		return nil, fmt.Errorf("%w: no complete address on file", ErrPermission)
	}

	var order *models.Order
	err = s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		order = &models.Order{
			BuyerID: buyerID,
			Status:  models.OrderStatusPending,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		var total float64
		for _, item := range req.Items {
			prod, err := tx.GetProductForUpdate(ctx, item.ProductID)
			if err != nil {
				if repo.IsNotFound(err) {
					return fmt.Errorf("%w: product with id %d does not exist", ErrValidation, item.ProductID)
				}
				return err
			}
			if !prod.IsActive {
				return fmt.Errorf("%w: product %q is not available", ErrValidation, prod.Name)
			}

			ok, err := tx.DecrementStock(ctx, prod.ID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: ordered quantity exceeds stock", ErrValidation)
			}

			lineTotal := float64(item.Quantity) * prod.Price
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: prod.ID,
				Quantity:  item.Quantity,
				UnitPrice: prod.Price,
				LineTotal: lineTotal,
			}
			if err := tx.CreateOrderItem(ctx, &orderItem); err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
			total += lineTotal
		}

		// The address is copied, never referenced: later profile edits must
		// not rewrite past orders.
		addr := models.DeliveryAddress{OrderID: order.ID}
		if req.UseNewAddress {
			addr.City = req.DeliveryAddress.City
			addr.StreetAddress = req.DeliveryAddress.StreetAddress
			addr.ApartmentAddress = req.DeliveryAddress.ApartmentAddress
			addr.PostalCode = req.DeliveryAddress.PostalCode
		} else {
			addr.City = buyer.Address.City
			addr.StreetAddress = buyer.Address.StreetAddress
			addr.ApartmentAddress = buyer.Address.ApartmentAddress
			addr.PostalCode = buyer.Address.PostalCode
		}
		if err := tx.CreateDeliveryAddress(ctx, &addr); err != nil {
			return err
		}
		order.Address = &addr

		order.Total = total
		return tx.DB.Model(&models.Order{}).Where("id = ?", order.ID).Update("total", total).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, buyerID.String(), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"buyerID": buyerID.String(),
		"total":   order.Total,
	})
	return order, nil
}

// UpdateStatus moves an order along the state machine. Cancellation does not
// restock inventory.
func (s *OrderService) UpdateStatus(ctx context.Context, req transport.UpdateOrderStatusRequest) (*models.Order, error) {
	if !validStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
	}

	order, err := s.Repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order with id %d", ErrNotFound, req.OrderID)
		}
		return nil, err
	}

	switch order.Status {
	case models.OrderStatusCancelled:
		return nil, fmt.Errorf("%w: order is cancelled, status can't change", ErrConflict)
	case models.OrderStatusDelivered:
		return nil, fmt.Errorf("%w: order is delivered, status can't change", ErrConflict)
	}

	allowed := false
	for _, next := range statusTransitions[order.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: can't move order from %s to %s", ErrConflict, order.Status, req.Status)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, order.ID, req.Status); err != nil {
		return nil, err
	}
	order.Status = req.Status

	s.publish(ctx, order.BuyerID.String(), map[string]any{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, buyerID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrdersForBuyer(ctx, buyerID, offset, limit)
}

// GetOrder returns the buyer's order with items and address, or NotFound when
// it is absent or owned by somebody else.
func (s *OrderService) GetOrder(ctx context.Context, buyerID uuid.UUID, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrderForBuyer(ctx, id, buyerID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: order with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}
