package controllers

import (
	"errors"
	"strings"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/pkg/resp"
	"github.com/jefin3273/connect-crave/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidItems       = "Invalid order items"
	msgInvalidDiscount    = "Invalid discount"
	msgCreateOrderFailed  = "Failed to create order"
	msgFetchOrdersFailed  = "Failed to fetch orders"
	msgOrderNotFound      = "Order not found"
	msgSessionRequired    = "Seat session required"
	msgInvalidStatus      = "Invalid status"
	msgInvalidTransition  = "Status transition not allowed"
	msgUpdateOrderFailed  = "Failed to update order"
	msgIdempotencyReused  = "Idempotency key already used"
	cacheControlOrderList = "private, no-cache, must-revalidate"
)

type OrderController struct {
	Orders  *services.OrderService
	History *services.OrderHistory
	Log     *zap.Logger
}

func NewOrderController(orders *services.OrderService, history *services.OrderHistory, log *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, History: history, Log: log}
}

// ===== Create Order =====

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		resp.BadRequest(c, msgInvalidItems)
		return
	}
	if k := strings.TrimSpace(c.GetHeader("Idempotency-Key")); k != "" {
		req.IdempotencyKey = k
	}

	o, err := oc.Orders.Create(c.Request.Context(), scopeOf(c), &req)
	switch {
	case errors.Is(err, services.ErrIdempotencyConflict):
		resp.Conflict(c, msgIdempotencyReused)
		return
	case errors.Is(err, services.ErrInvalidDiscount):
		resp.BadRequest(c, msgInvalidDiscount)
		return
	case errors.Is(err, services.ErrInvalidInput):
		resp.BadRequest(c, msgInvalidItems)
		return
	case err != nil:
		resp.ServerError(c, oc.Log, msgCreateOrderFailed, err)
		return
	}
	resp.OK(c, mapToOrderResponse(o))
}

// ===== Orders =====

// GET /orders
func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.Orders.List(c.Request.Context(), scopeOf(c))
	if errors.Is(err, services.ErrSessionRequired) {
		resp.Unauthorized(c, msgSessionRequired)
		return
	}
	if err != nil {
		resp.ServerError(c, oc.Log, msgFetchOrdersFailed, err)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, mapToOrderResponse(&orders[i]))
	}
	c.Header("Cache-Control", cacheControlOrderList)
	resp.OK(c, out)
}

// GET /orders/history
func (oc *OrderController) ListHistory(c *gin.Context) {
	entries, err := oc.History.List(c.Request.Context(), scopeOf(c))
	if errors.Is(err, services.ErrSessionRequired) {
		resp.Unauthorized(c, msgSessionRequired)
		return
	}
	if err != nil {
		resp.ServerError(c, oc.Log, msgFetchOrdersFailed, err)
		return
	}
	c.Header("Cache-Control", cacheControlOrderList)
	resp.OK(c, entries)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	o, err := oc.Orders.Get(c.Request.Context(), scopeOf(c), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrSessionRequired):
		resp.Unauthorized(c, msgSessionRequired)
		return
	case errors.Is(err, services.ErrOrderNotFound):
		resp.NotFound(c, msgOrderNotFound)
		return
	case err != nil:
		resp.ServerError(c, oc.Log, msgFetchOrdersFailed, err)
		return
	}
	c.Header("Cache-Control", cacheControlOrderList)
	resp.OK(c, mapToOrderResponse(o))
}

// ===== Fulfillment =====

type UpdateStatusReq struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

// PATCH /orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, msgInvalidStatus)
		return
	}

	o, err := oc.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		resp.BadRequest(c, msgInvalidStatus)
		return
	case errors.Is(err, services.ErrOrderNotFound):
		resp.NotFound(c, msgOrderNotFound)
		return
	case errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, msgInvalidTransition)
		return
	case err != nil:
		resp.ServerError(c, oc.Log, msgUpdateOrderFailed, err)
		return
	}
	resp.OK(c, mapToOrderResponse(o))
}
