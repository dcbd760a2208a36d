package middleware

import (
	"net/http"

	"github.com/franciscosanchezn/gin-momo-api/internal/access"
	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Require is the capability gate run before handler dispatch. It aborts
// with 401 when no identity was resolved and 403 when req rejects it.
func Require(req access.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		var actor *access.Actor
		if a, ok := ActorFrom(c); ok {
			actor = &a
		}

		switch access.Check(actor, req) {
		case access.Unauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				models.NewAPIError(models.ErrUnauthorized, "Unauthorized"))
		case access.Forbidden:
			c.AbortWithStatusJSON(http.StatusForbidden,
				models.NewAPIError(models.ErrForbidden, "Admin access required"))
		default:
			c.Next()
		}
	}
}

// RequireAuth admits any authenticated user
func RequireAuth() gin.HandlerFunc {
	return Require(access.Authenticated)
}

// RequireAdmin admits only administrators
func RequireAdmin() gin.HandlerFunc {
	return Require(access.Admin)
}
