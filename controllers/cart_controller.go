package controllers

import (
	"errors"
	"strings"

	"github.com/jefin3273/connect-crave/pkg/cart"
	"github.com/jefin3273/connect-crave/pkg/resp"
	"github.com/jefin3273/connect-crave/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	msgInvalidCartItem    = "Invalid cart item"
	msgCartItemMissing    = "Cart item not found"
	msgEmptyCart          = "Cart is empty"
	msgUnknownPartner     = "Unknown discount partner"
	msgCheckoutInProgress = "Checkout already in progress"
)

// ทุก route ของ cart ต้องมี seat session (middlewares.SeatSession required)
type CartController struct {
	Carts *services.CartService
	Log   *zap.Logger
}

func NewCartController(carts *services.CartService, log *zap.Logger) *CartController {
	return &CartController{Carts: carts, Log: log}
}

// GET /cart
func (cc *CartController) Get(c *gin.Context) {
	resp.OK(c, cc.Carts.Get(scopeOf(c).SessionID))
}

type AddCartItemReq struct {
	ID           string          `json:"id"`
	Name         string          `json:"name" binding:"required"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	RestaurantID uint            `json:"restaurantId" binding:"required"`
}

// POST /cart/items
func (cc *CartController) AddItem(c *gin.Context) {
	var req AddCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, msgInvalidCartItem)
		return
	}
	v, err := cc.Carts.Add(scopeOf(c).SessionID, cart.Item{
		ID: req.ID, Name: req.Name, Price: req.Price, Quantity: req.Quantity, RestaurantID: req.RestaurantID,
	})
	if err != nil {
		resp.BadRequest(c, msgInvalidCartItem)
		return
	}
	resp.OK(c, v)
}

type UpdateQtyReq struct {
	Quantity int `json:"quantity"`
}

// PATCH /cart/items/:id
func (cc *CartController) UpdateQty(c *gin.Context) {
	var req UpdateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, msgInvalidCartItem)
		return
	}
	v, err := cc.Carts.UpdateQuantity(scopeOf(c).SessionID, c.Param("id"), req.Quantity)
	if errors.Is(err, services.ErrItemNotFound) {
		resp.NotFound(c, msgCartItemMissing)
		return
	}
	resp.OK(c, v)
}

// DELETE /cart/items/:id
func (cc *CartController) RemoveItem(c *gin.Context) {
	v, err := cc.Carts.Remove(scopeOf(c).SessionID, c.Param("id"))
	if errors.Is(err, services.ErrItemNotFound) {
		resp.NotFound(c, msgCartItemMissing)
		return
	}
	resp.OK(c, v)
}

// DELETE /cart
func (cc *CartController) Clear(c *gin.Context) {
	resp.OK(c, cc.Carts.Clear(scopeOf(c).SessionID))
}

type ApplyDiscountReq struct {
	PartnerID string `json:"partnerId" binding:"required"`
}

// POST /cart/discount
func (cc *CartController) ApplyDiscount(c *gin.Context) {
	var req ApplyDiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, msgUnknownPartner)
		return
	}
	v, err := cc.Carts.ApplyDiscount(scopeOf(c).SessionID, req.PartnerID)
	switch {
	case errors.Is(err, services.ErrUnknownPartner):
		resp.BadRequest(c, msgUnknownPartner)
		return
	case errors.Is(err, services.ErrEmptyCart):
		resp.BadRequest(c, msgEmptyCart)
		return
	}
	resp.OK(c, v)
}

// DELETE /cart/discount
func (cc *CartController) ClearDiscount(c *gin.Context) {
	resp.OK(c, cc.Carts.ClearDiscount(scopeOf(c).SessionID))
}

type CheckoutReq struct {
	IdempotencyKey string `json:"idempotencyKey"`
}

// POST /cart/checkout
func (cc *CartController) Checkout(c *gin.Context) {
	var req CheckoutReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, msgInvalidItems)
			return
		}
	}
	if k := strings.TrimSpace(c.GetHeader("Idempotency-Key")); k != "" {
		req.IdempotencyKey = k
	}

	o, err := cc.Carts.Checkout(c.Request.Context(), scopeOf(c), req.IdempotencyKey)
	switch {
	case errors.Is(err, services.ErrCheckoutInProgress):
		resp.Conflict(c, msgCheckoutInProgress)
		return
	case errors.Is(err, services.ErrIdempotencyConflict):
		resp.Conflict(c, msgIdempotencyReused)
		return
	case errors.Is(err, services.ErrEmptyCart):
		resp.BadRequest(c, msgEmptyCart)
		return
	case errors.Is(err, services.ErrInvalidDiscount):
		resp.BadRequest(c, msgInvalidDiscount)
		return
	case errors.Is(err, services.ErrInvalidInput):
		resp.BadRequest(c, msgInvalidItems)
		return
	case err != nil:
		resp.ServerError(c, cc.Log, msgCreateOrderFailed, err)
		return
	}
	resp.OK(c, mapToOrderResponse(o))
}
