package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserSummary is a user with the number of orders placed
type UserSummary struct {
	models.User
	OrderCount int64 `json:"orderCount"`
}

// UserDetail is a user with the full order history and total spend
type UserDetail struct {
	models.User
	Orders     []models.Order  `json:"orders"`
	OrderCount int             `json:"orderCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	// ListUsers returns every user, newest first, with their order count
	ListUsers(ctx context.Context) ([]UserSummary, error)
	// GetUserDetail returns a user with orders and total spend
	GetUserDetail(ctx context.Context, id uint) (*UserDetail, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: email is already registered", ErrConflict)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: email is already registered", ErrConflict)
		}
		return err
	}
	return nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := s.db.WithContext(ctx).Where("email = ?", normalized).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "user")
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "user")
	}
	return &user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		UserID uint
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byUser[c.UserID] = c.Count
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{User: u, OrderCount: byUser[u.ID]})
	}
	return summaries, nil
}

func (s *userService) GetUserDetail(ctx context.Context, id uint) (*UserDetail, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", id).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalAmount)
	}

	return &UserDetail{
		User:       *user,
		Orders:     orders,
		OrderCount: len(orders),
		TotalSpent: total,
	}, nil
}
