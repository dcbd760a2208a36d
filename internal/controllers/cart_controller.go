package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-momo-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	service services.CartService
}

func NewCartController(service services.CartService) *CartController {
	return &CartController{service: service}
}

type addCartItemRequest struct {
	MenuItemID uint `json:"menuItemId"`
	Quantity   *int `json:"quantity"`
}

// GetCart godoc
// @Summary Get the current user's cart
// @Tags cart
// @Produce json
// @Success 200 {object} models.Cart
// @Failure 401 {object} models.APIError
// @Router /api/cart [get]
func (cc *CartController) GetCart(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	cart, err := cc.service.GetCart(c.Request.Context(), a.UserID)
	if err != nil {
		respondError(c, err, "Failed to load cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem godoc
// @Summary Add a menu item to the cart
// @Description Quantity defaults to 1 and is merged into an existing line
// @Tags cart
// @Accept json
// @Produce json
// @Param body body addCartItemRequest true "Item and quantity"
// @Success 200 {object} models.Cart
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/cart/items [post]
func (cc *CartController) AddItem(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := cc.service.AddItem(c.Request.Context(), a.UserID, req.MenuItemID, quantity)
	if err != nil {
		respondError(c, err, "Failed to add item to cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem godoc
// @Summary Set the quantity of a cart line
// @Description A quantity of zero or less removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Param menuItemId path int true "Menu item ID"
// @Param body body object{quantity=int} true "Quantity"
// @Success 200 {object} models.Cart
// @Failure 404 {object} models.APIError
// @Router /api/cart/items/{menuItemId} [put]
func (cc *CartController) UpdateItem(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	menuItemID, ok := paramID(c, "menuItemId")
	if !ok {
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		badRequest(c, "Quantity is required")
		return
	}

	cart, err := cc.service.UpdateItem(c.Request.Context(), a.UserID, menuItemID, *req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem godoc
// @Summary Remove a line from the cart
// @Tags cart
// @Produce json
// @Param menuItemId path int true "Menu item ID"
// @Success 200 {object} models.Cart
// @Failure 404 {object} models.APIError
// @Router /api/cart/items/{menuItemId} [delete]
func (cc *CartController) RemoveItem(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	menuItemID, ok := paramID(c, "menuItemId")
	if !ok {
		return
	}

	cart, err := cc.service.RemoveItem(c.Request.Context(), a.UserID, menuItemID)
	if err != nil {
		respondError(c, err, "Failed to remove item from cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} models.Cart
// @Failure 404 {object} models.APIError
// @Router /api/cart [delete]
func (cc *CartController) ClearCart(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	cart, err := cc.service.Clear(c.Request.Context(), a.UserID)
	if err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}
