// Package events carries order-placed notifications to restaurant fulfillment.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const TypeOrderPlaced = "order_placed"

type Line struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderPlaced is published once per restaurant present in an order.
type OrderPlaced struct {
	Type         string          `json:"type"`
	OrderID      string          `json:"orderId"`
	RestaurantID uint            `json:"restaurantId"`
	SeatNumber   *int            `json:"seatNumber,omitempty"`
	Items        []Line          `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	PlacedAt     time.Time       `json:"placedAt"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, msg OrderPlaced) error
	Close() error
}
