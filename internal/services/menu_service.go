package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"gorm.io/gorm"
)

// MenuService provides methods to interact with the menu catalog
type MenuService interface {
	// ListAvailable returns the items currently on sale, by category then name
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	// GetItem retrieves a menu item by its ID, available or not
	GetItem(ctx context.Context, id uint) (*models.MenuItem, error)
	// CreateItem validates and stores a new menu item
	CreateItem(ctx context.Context, item *models.MenuItem) error
	// UpdateItem applies a partial update to an existing item
	UpdateItem(ctx context.Context, id uint, patch models.MenuItemPatch) (*models.MenuItem, error)
	// DeleteItem removes a menu item
	DeleteItem(ctx context.Context, id uint) error
}

type menuService struct {
	db *gorm.DB
}

// NewMenuService creates a new instance of MenuService
func NewMenuService(db *gorm.DB) MenuService {
	return &menuService{db: db}
}

func (s *menuService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("category ASC, name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *menuService) GetItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFoundOr(err, "menu item")
	}
	return &item, nil
}

func (s *menuService) CreateItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *menuService) UpdateItem(ctx context.Context, id uint, patch models.MenuItemPatch) (*models.MenuItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(item)
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) DeleteItem(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: menu item", ErrNotFound)
	}
	return nil
}

func validateMenuItem(item *models.MenuItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	case strings.TrimSpace(item.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidRequest)
	case strings.TrimSpace(item.Image) == "":
		return fmt.Errorf("%w: image is required", ErrInvalidRequest)
	case !item.Price.IsPositive():
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidRequest)
	case !models.ValidCategory(item.Category):
		return fmt.Errorf("%w: category must be one of steam, fried, special", ErrInvalidRequest)
	}
	return nil
}
