package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-momo-api/internal/access"
	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// statusMessages holds the customer notification text per status.
// Statuses without an entry produce no notification.
var statusMessages = map[models.OrderStatus]string{
	models.StatusConfirmed:      "Your order has been confirmed and will be prepared soon.",
	models.StatusPreparing:      "Your order is being prepared.",
	models.StatusOutForDelivery: "Your order is out for delivery!",
	models.StatusDelivered:      "Your order has been delivered. Enjoy your meal!",
	models.StatusCancelled:      "Your order has been cancelled.",
}

// OrderService places orders from carts and tracks their status
type OrderService interface {
	// PlaceOrder turns the actor's cart into a pending order and empties the cart
	PlaceOrder(ctx context.Context, actor access.Actor, info models.CustomerInfo) (*models.Order, error)
	// ListOrders returns the actor's orders, or every order for an admin
	ListOrders(ctx context.Context, actor access.Actor) ([]models.Order, error)
	// GetOrder returns one order visible to the actor
	GetOrder(ctx context.Context, actor access.Actor, id uint) (*models.Order, error)
	// UpdateStatus sets the order status, records history and notifies the owner
	UpdateStatus(ctx context.Context, actor access.Actor, id uint, status models.OrderStatus, notes string) (*models.Order, error)
	// GetHistory returns the status history of an order, newest first
	GetHistory(ctx context.Context, actor access.Actor, id uint) ([]models.OrderStatusHistory, error)
}

type orderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db}
}

// PlaceOrder runs the order, history, notification and cart writes in one
// transaction. Resubmitting creates another order.
func (s *orderService) PlaceOrder(ctx context.Context, actor access.Actor, info models.CustomerInfo) (*models.Order, error) {
	info, err := normalizeCustomerInfo(info)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := preloadCart(tx).Where("user_id = ?", actor.UserID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart is empty", ErrInvalidRequest)
			}
			return err
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrInvalidRequest)
		}

		items, total, err := snapshotCart(cart.Items)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:       actor.UserID,
			Items:        items,
			CustomerInfo: info,
			TotalAmount:  total,
			Status:       models.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		history := models.OrderStatusHistory{
			OrderID:     order.ID,
			Status:      models.StatusPending,
			UpdatedByID: actor.UserID,
			Notes:       "Order placed",
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("create status history: %w", err)
		}

		notification := models.Notification{
			UserID:         actor.UserID,
			Type:           models.NotificationOrderStatus,
			Title:          "Order Placed Successfully",
			Message:        fmt.Sprintf("Your order %s has been placed and is pending confirmation.", orderRef(order.ID)),
			RelatedOrderID: &order.ID,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return fmt.Errorf("create notification: %w", err)
		}

		if err := clearCart(tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  actor.UserID,
		"total":    order.TotalAmount.String(),
		"items":    len(order.Items),
	}).Info("Order placed")

	return &order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor access.Actor) ([]models.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Order("created_at DESC, id DESC")
	if !actor.IsAdmin() {
		query = query.Where("user_id = ?", actor.UserID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor access.Actor, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").Preload("User").First(&order, id).Error; err != nil {
		return nil, notFoundOr(err, "order")
	}
	if access.Check(&actor, access.Owner(order.UserID)) != access.Allowed {
		return nil, fmt.Errorf("%w: access denied", ErrForbidden)
	}
	return &order, nil
}

// UpdateStatus enforces no transition graph: any status in the vocabulary
// may follow any other, and repeating a status appends another entry.
func (s *orderService) UpdateStatus(ctx context.Context, actor access.Actor, id uint, status models.OrderStatus, notes string) (*models.Order, error) {
	if access.Check(&actor, access.Admin) != access.Allowed {
		return nil, fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, status)
	}
	if strings.TrimSpace(notes) == "" {
		notes = fmt.Sprintf("Status updated to %s", status)
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return notFoundOr(err, "order")
		}

		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		history := models.OrderStatusHistory{
			OrderID:     order.ID,
			Status:      status,
			UpdatedByID: actor.UserID,
			Notes:       notes,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("create status history: %w", err)
		}

		message, ok := statusMessages[status]
		if !ok {
			return nil
		}
		notification := models.Notification{
			UserID:         order.UserID,
			Type:           models.NotificationOrderStatus,
			Title:          "Order " + status.Label(),
			Message:        message,
			RelatedOrderID: &order.ID,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id":   order.ID,
		"status":     status,
		"updated_by": actor.UserID,
	}).Info("Order status updated")

	if err := s.db.WithContext(ctx).Preload("Items").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) GetHistory(ctx context.Context, actor access.Actor, id uint) ([]models.OrderStatusHistory, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, notFoundOr(err, "order")
	}
	if access.Check(&actor, access.Owner(order.UserID)) != access.Allowed {
		return nil, fmt.Errorf("%w: access denied", ErrForbidden)
	}

	var history []models.OrderStatusHistory
	if err := s.db.WithContext(ctx).
		Preload("UpdatedBy").
		Where("order_id = ?", id).
		Order("created_at DESC, id DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// snapshotCart copies the current name and price of every line
func snapshotCart(lines []models.CartItem) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.MenuItem == nil {
			return nil, decimal.Zero, fmt.Errorf("%w: menu item %d is no longer on the menu", ErrInvalidRequest, line.MenuItemID)
		}
		item := models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.MenuItem.Name,
			Price:      line.MenuItem.Price,
			Quantity:   line.Quantity,
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}
	return items, total, nil
}

func normalizeCustomerInfo(info models.CustomerInfo) (models.CustomerInfo, error) {
	info.Name = strings.TrimSpace(info.Name)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Email = strings.TrimSpace(info.Email)
	info.Address = strings.TrimSpace(info.Address)
	info.City = strings.TrimSpace(info.City)
	info.Notes = strings.TrimSpace(info.Notes)

	if info.Name == "" || info.Phone == "" || info.Email == "" || info.Address == "" || info.City == "" {
		return info, fmt.Errorf("%w: missing required customer information", ErrInvalidRequest)
	}
	return info, nil
}

// orderRef is the short order number shown to customers
func orderRef(id uint) string {
	return fmt.Sprintf("#%06d", id)
}
