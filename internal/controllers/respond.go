package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-momo-api/internal/access"
	"github.com/franciscosanchezn/gin-momo-api/internal/middleware"
	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/franciscosanchezn/gin-momo-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError translates a service error into the API error taxonomy.
// Unexpected errors are logged and answered with a generic message.
func respondError(c *gin.Context, err error, fallback string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.sentinel) {
			c.JSON(k.status, models.NewAPIError(k.code, clientMessage(err, k.sentinel)))
			return
		}
	}

	log.WithError(err).WithFields(log.Fields{
		"request_id": c.GetString("requestID"),
		"path":       c.FullPath(),
	}).Error(fallback)
	c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, fallback))
}

var errorKinds = []struct {
	sentinel error
	status   int
	code     string
}{
	{services.ErrInvalidRequest, http.StatusBadRequest, models.ErrBadRequest},
	{services.ErrUnauthorized, http.StatusUnauthorized, models.ErrUnauthorized},
	{services.ErrForbidden, http.StatusForbidden, models.ErrForbidden},
	{services.ErrNotFound, http.StatusNotFound, models.ErrNotFound},
	{services.ErrConflict, http.StatusConflict, models.ErrConflict},
}

// clientMessage keeps the detail after the category, e.g. "not found: order" becomes "Order not found"
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	i := strings.Index(msg, prefix)
	if i < 0 {
		return sentinel.Error()
	}
	detail := msg[i+len(prefix):]
	if sentinel == services.ErrNotFound {
		detail += " not found"
	}
	return strings.ToUpper(detail[:1]) + detail[1:]
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, message))
}

// paramID parses a positive numeric path parameter, answering 400 otherwise
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name+" format")
		return 0, false
	}
	return uint(id), true
}

// actor returns the gated identity; routes using it sit behind middleware.Require
func actor(c *gin.Context) (access.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Unauthorized"))
		return access.Actor{}, false
	}
	return a, true
}
