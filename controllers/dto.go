package controllers

import (
	"time"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/services"
	"github.com/jefin3273/connect-crave/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ====== Response DTO ======

type RestaurantName struct {
	Name string `json:"name"`
}

type OrderItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	RestaurantID uint            `json:"restaurantId"`
	Restaurant   *RestaurantName `json:"restaurant,omitempty"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	Status         entity.OrderStatus  `json:"status"`
	TotalAmount    decimal.Decimal     `json:"totalAmount"`
	DiscountAmount decimal.Decimal     `json:"discountAmount"`
	PayableAmount  decimal.Decimal     `json:"payableAmount"`
	PartnerID      *string             `json:"partnerId,omitempty"`
	SeatNumber     *int                `json:"seatNumber,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	OrderItems     []OrderItemResponse `json:"orderItems"`
}

func mapToOrderResponse(o *entity.Order) OrderResponse {
	out := OrderResponse{
		ID:             o.ID,
		Status:         o.Status,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		PayableAmount:  o.PayableAmount(),
		PartnerID:      o.PartnerID,
		SeatNumber:     o.SeatNumber,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		OrderItems:     make([]OrderItemResponse, 0, len(o.OrderItems)),
	}
	for _, it := range o.OrderItems {
		item := OrderItemResponse{
			ID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity,
			RestaurantID: it.RestaurantID,
		}
		if it.Restaurant != nil {
			item.Restaurant = &RestaurantName{Name: it.Restaurant.Name}
		}
		out.OrderItems = append(out.OrderItems, item)
	}
	return out
}

type MenuItemResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

type RestaurantDetailResponse struct {
	entity.Restaurant
	Menu []MenuItemResponse `json:"menu"`
}

func mapToRestaurantDetail(r *entity.Restaurant) RestaurantDetailResponse {
	out := RestaurantDetailResponse{Restaurant: *r, Menu: make([]MenuItemResponse, 0, len(r.MenuItems))}
	for _, m := range r.MenuItems {
		out.Menu = append(out.Menu, MenuItemResponse{
			ID: m.ID, Name: m.Name, Description: m.Description, Price: m.Price, Image: m.Image,
		})
	}
	return out
}

// scopeOf reads the seat session set by middlewares.SeatSession.
func scopeOf(c *gin.Context) services.Scope {
	return services.Scope{SessionID: utils.CurrentSessionID(c), SeatNumber: utils.CurrentSeat(c)}
}
