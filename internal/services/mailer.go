package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/sirupsen/logrus"
)

// Mailer delivers password reset tokens out of band
type Mailer interface {
	SendPasswordReset(ctx context.Context, user *models.User, token string) error
}

// LogMailer writes the reset link to the log instead of sending an email
type LogMailer struct {
	ClientOrigin string
	Logger       *logrus.Logger
}

func NewLogMailer(clientOrigin string, logger *logrus.Logger) *LogMailer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogMailer{ClientOrigin: strings.TrimRight(clientOrigin, "/"), Logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, user *models.User, token string) error {
	link := m.ClientOrigin + "/reset-password?token=" + url.QueryEscape(token)
	m.Logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"link":    link,
	}).Info("Password reset link issued")
	return nil
}
