package controllers

import (
	"fmt"
	"net/http"

	"github.com/franciscosanchezn/gin-momo-api/internal/models"
	"github.com/franciscosanchezn/gin-momo-api/internal/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	service services.OrderService
}

func NewOrderController(service services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type placeOrderRequest struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// PlaceOrder godoc
// @Summary Check out the cart
// @Description Creates a pending order from the current cart and empties the cart
// @Tags orders
// @Accept json
// @Produce json
// @Param body body placeOrderRequest true "Customer information"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/orders [post]
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	order, err := oc.service.PlaceOrder(c.Request.Context(), a, req.CustomerInfo)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders godoc
// @Summary List orders
// @Description Customers see their own orders, admins see every order
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Router /api/orders [get]
func (oc *OrderController) ListOrders(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	orders, err := oc.service.ListOrders(c.Request.Context(), a)
	if err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/{id} [get]
func (oc *OrderController) GetOrder(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := oc.service.GetOrder(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary Change an order's status
// @Description Admin only. Appends a history entry and notifies the customer.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param body body updateStatusRequest true "New status and optional notes"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/orders/{id}/status [put]
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Status == "" {
		badRequest(c, "Status is required")
		return
	}

	order, err := oc.service.UpdateStatus(c.Request.Context(), a, id, models.OrderStatus(req.Status), req.Notes)
	if err != nil {
		respondError(c, err, fmt.Sprintf("Failed to update order %d", id))
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetHistory godoc
// @Summary Status history of an order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {array} models.OrderStatusHistory
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/orders/{id}/history [get]
func (oc *OrderController) GetHistory(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	history, err := oc.service.GetHistory(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err, "Failed to fetch order history")
		return
	}
	c.JSON(http.StatusOK, history)
}
