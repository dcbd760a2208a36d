package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"gorm.io/gorm"
)

// CartService manages the single cart each user owns
type CartService interface {
	// GetCart returns the user's cart, creating an empty one on first access
	GetCart(ctx context.Context, userID uint) (*models.Cart, error)
	// AddItem adds quantity of a menu item, merging with an existing line
	AddItem(ctx context.Context, userID, menuItemID uint, quantity int) (*models.Cart, error)
	// UpdateItem sets the quantity of a line; zero or less removes it
	UpdateItem(ctx context.Context, userID, menuItemID uint, quantity int) (*models.Cart, error)
	// RemoveItem drops a line from the cart
	RemoveItem(ctx context.Context, userID, menuItemID uint) (*models.Cart, error)
	// Clear empties the cart
	Clear(ctx context.Context, userID uint) (*models.Cart, error)
}

type cartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) CartService {
	return &cartService{db: db}
}

func (s *cartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, cart.ID)
}

func (s *cartService) AddItem(ctx context.Context, userID, menuItemID uint, quantity int) (*models.Cart, error) {
	if menuItemID == 0 || quantity < 1 {
		return nil, fmt.Errorf("%w: invalid menu item or quantity", ErrInvalidRequest)
	}

	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, menuItemID).Error; err != nil {
		return nil, notFoundOr(err, "menu item")
	}
	if !item.IsAvailable {
		return nil, fmt.Errorf("%w: menu item is not available", ErrInvalidRequest)
	}

	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var line models.CartItem
	err = s.db.WithContext(ctx).
		Where("cart_id = ? AND menu_item_id = ?", cart.ID, menuItemID).
		First(&line).Error
	switch {
	case err == nil:
		line.Quantity += quantity
		if err := s.db.WithContext(ctx).Model(&line).Update("quantity", line.Quantity).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{CartID: cart.ID, MenuItemID: menuItemID, Quantity: quantity}
		if err := s.db.WithContext(ctx).Create(&line).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.load(ctx, cart.ID)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, menuItemID uint, quantity int) (*models.Cart, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var line models.CartItem
	if err := s.db.WithContext(ctx).
		Where("cart_id = ? AND menu_item_id = ?", cart.ID, menuItemID).
		First(&line).Error; err != nil {
		return nil, notFoundOr(err, "cart item")
	}

	if quantity <= 0 {
		err = s.db.WithContext(ctx).Delete(&line).Error
	} else {
		err = s.db.WithContext(ctx).Model(&line).Update("quantity", quantity).Error
	}
	if err != nil {
		return nil, err
	}

	return s.load(ctx, cart.ID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, menuItemID uint) (*models.Cart, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Where("cart_id = ? AND menu_item_id = ?", cart.ID, menuItemID).
		Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}

	return s.load(ctx, cart.ID)
}

func (s *cartService) Clear(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := clearCart(s.db.WithContext(ctx), cart.ID); err != nil {
		return nil, err
	}

	return s.load(ctx, cart.ID)
}

func (s *cartService) findCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, notFoundOr(err, "cart")
	}
	return &cart, nil
}

func (s *cartService) ensureCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil && isDuplicateKey(err) {
		// a concurrent request created it first
		return s.findCart(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *cartService) load(ctx context.Context, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := preloadCart(s.db.WithContext(ctx)).First(&cart, cartID).Error; err != nil {
		return nil, notFoundOr(err, "cart")
	}
	return &cart, nil
}

func preloadCart(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.MenuItem")
}

func clearCart(db *gorm.DB, cartID uint) error {
	return db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
