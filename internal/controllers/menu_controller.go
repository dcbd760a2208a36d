package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/franciscosanchezn/gin-momo-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MenuController interface {
	ListMenu(c *gin.Context)
	GetMenuItem(c *gin.Context)
	CreateMenuItem(c *gin.Context)
	UpdateMenuItem(c *gin.Context)
	DeleteMenuItem(c *gin.Context)
}

type menuController struct {
	service services.MenuService
}

func NewMenuController(service services.MenuService) MenuController {
	return &menuController{service: service}
}

type createMenuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	IsPopular   bool            `json:"isPopular"`
	IsSpicy     bool            `json:"isSpicy"`
	IsAvailable *bool           `json:"isAvailable"`
}

// ListMenu godoc
// @Summary List the menu
// @Description Get all available menu items ordered by category and name
// @Tags menu
// @Produce json
// @Success 200 {array} models.MenuItem
// @Failure 500 {object} models.APIError
// @Router /api/menu [get]
func (mc *menuController) ListMenu(c *gin.Context) {
	items, err := mc.service.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve menu")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItem godoc
// @Summary Get a menu item
// @Tags menu
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/menu/{id} [get]
func (mc *menuController) GetMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := mc.service.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem godoc
// @Summary Create a menu item
// @Description Admin only. isAvailable defaults to true when omitted.
// @Tags menu
// @Accept json
// @Produce json
// @Param item body createMenuItemRequest true "Menu item"
// @Success 201 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/menu [post]
func (mc *menuController) CreateMenuItem(c *gin.Context) {
	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	item := &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		IsPopular:   req.IsPopular,
		IsSpicy:     req.IsSpicy,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := mc.service.CreateItem(c.Request.Context(), item); err != nil {
		respondError(c, err, "Failed to create menu item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem godoc
// @Summary Update a menu item
// @Description Admin only. Fields left out of the body keep their value.
// @Tags menu
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param item body models.MenuItemPatch true "Fields to change"
// @Success 200 {object} models.MenuItem
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/menu/{id} [put]
func (mc *menuController) UpdateMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patch models.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	item, err := mc.service.UpdateItem(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem godoc
// @Summary Delete a menu item
// @Tags menu
// @Param id path int true "Menu item ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/menu/{id} [delete]
func (mc *menuController) DeleteMenuItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := mc.service.DeleteItem(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete menu item")
		return
	}
	c.Status(http.StatusNoContent)
}
