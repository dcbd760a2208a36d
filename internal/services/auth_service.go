package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MinPasswordLength      = 8
	DefaultResetTokenTTL   = 30 * time.Minute
	resetTokenEntropyBytes = 32
)

// SignUpInput is the data needed to register a customer account
type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// AuthService handles account creation, credential checks and password resets
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	// ForgotPassword issues a reset token for a known email; unknown emails are ignored
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a reset token and invalidates all others for the user
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	db          *gorm.DB
	users       UserService
	mailer      Mailer
	adminEmails map[string]struct{}
	resetTTL    time.Duration
	now         func() time.Time
}

// NewAuthService builds an AuthService. Emails in adminEmails sign up as admins.
func NewAuthService(db *gorm.DB, users UserService, mailer Mailer, adminEmails []string, resetTTL time.Duration) AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			admins[e] = struct{}{}
		}
	}
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}
	return &authService{
		db:          db,
		users:       users,
		mailer:      mailer,
		adminEmails: admins,
		resetTTL:    resetTTL,
		now:         time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, fmt.Errorf("%w: email, password, and name are required", ErrInvalidRequest)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, MinPasswordLength)
	}

	role := models.RoleCustomer
	if _, ok := s.adminEmails[email]; ok {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email: email,
		Name:  name,
		Phone: strings.TrimSpace(in.Phone),
		Role:  role,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("User signed up")
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidRequest)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	return user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidRequest)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	raw, err := newResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	token := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(raw),
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		return err
	}

	return s.mailer.SendPasswordReset(ctx, user, raw)
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return fmt.Errorf("%w: token and password are required", ErrInvalidRequest)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidRequest, MinPasswordLength)
	}

	var stored models.PasswordResetToken
	err := s.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", hashResetToken(token), s.now()).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid or expired token", ErrInvalidRequest)
		}
		return err
	}

	var user models.User
	user.ID = stored.UserID
	if err := user.SetPassword(password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", stored.UserID).Update("password_hash", user.PasswordHash).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", stored.UserID).Delete(&models.PasswordResetToken{}).Error
	})
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
