package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-momo-api/internal/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service services.UserService
}

func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// ListUsers godoc
// @Summary List customers
// @Description Admin only. Each user carries the number of orders placed.
// @Tags users
// @Produce json
// @Success 200 {array} services.UserSummary
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	users, err := uc.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Customer detail
// @Description Admin only. Includes orders, order count and total spent.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} services.UserDetail
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := uc.service.GetUserDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, detail)
}
