package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-momo-api/internal/services"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	service services.NotificationService
}

func NewNotificationController(service services.NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

// ListNotifications godoc
// @Summary List the current user's notifications
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Param skip query int false "Offset"
// @Success 200 {object} services.NotificationPage
// @Router /api/notifications [get]
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		badRequest(c, "Invalid limit")
		return
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil || skip < 0 {
		badRequest(c, "Invalid skip")
		return
	}

	page, err := nc.service.List(c.Request.Context(), a.UserID, limit, skip)
	if err != nil {
		respondError(c, err, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, page)
}

// UnreadCount godoc
// @Summary Number of unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /api/notifications/unread-count [get]
func (nc *NotificationController) UnreadCount(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	count, err := nc.service.UnreadCount(c.Request.Context(), a.UserID)
	if err != nil {
		respondError(c, err, "Failed to fetch unread count")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} models.Notification
// @Failure 404 {object} models.APIError
// @Router /api/notifications/{id}/read [put]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	n, err := nc.service.MarkRead(c.Request.Context(), a.UserID, id)
	if err != nil {
		respondError(c, err, "Failed to mark notification as read")
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/read-all [put]
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	updated, err := nc.service.MarkAllRead(c.Request.Context(), a.UserID)
	if err != nil {
		respondError(c, err, "Failed to mark notifications as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": updated})
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.APIError
// @Router /api/notifications/{id} [delete]
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := nc.service.Delete(c.Request.Context(), a.UserID, id); err != nil {
		respondError(c, err, "Failed to delete notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// Broadcast godoc
// @Summary Send a notification
// @Description Admin only. Exactly one of userId, userIds or sendToAll picks the recipients.
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body services.Broadcast true "Notification and recipients"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/notifications [post]
func (nc *NotificationController) Broadcast(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req services.Broadcast
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	count, err := nc.service.Send(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err, "Failed to create notification")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Created %d notification(s)", count),
		"count":   count,
	})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
