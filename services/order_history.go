package services

import (
	"context"
	"time"

	"github.com/jefin3273/connect-crave/entity"

	"github.com/shopspring/decimal"
)

// StatusBadge is how a status is shown in the order history.
type StatusBadge struct {
	Label     string `json:"label"`
	TextColor string `json:"textColor"`
	BgColor   string `json:"bgColor"`
}

var statusBadges = map[entity.OrderStatus]StatusBadge{
	entity.OrderStatusPending:   {"Pending", "text-yellow-700", "bg-yellow-100"},
	entity.OrderStatusConfirmed: {"Confirmed", "text-blue-700", "bg-blue-100"},
	entity.OrderStatusPreparing: {"Preparing", "text-orange-700", "bg-orange-100"},
	entity.OrderStatusReady:     {"Ready", "text-green-700", "bg-green-100"},
	entity.OrderStatusDelivered: {"Delivered", "text-gray-700", "bg-gray-100"},
	entity.OrderStatusCancelled: {"Cancelled", "text-red-700", "bg-red-100"},
}

// BadgeFor falls back to the PENDING badge for statuses it does not know.
func BadgeFor(s entity.OrderStatus) StatusBadge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return statusBadges[entity.OrderStatusPending]
}

// ShortID is the first 12 characters of an order id followed by "...".
func ShortID(id string) string {
	if len(id) <= 12 {
		return id + "..."
	}
	return id[:12] + "..."
}

type HistoryLine struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	RestaurantName string          `json:"restaurantName"`
}

type HistoryEntry struct {
	ID             string             `json:"id"`
	ShortID        string             `json:"shortId"`
	Status         entity.OrderStatus `json:"status"`
	Badge          StatusBadge        `json:"badge"`
	ItemCount      int                `json:"itemCount"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	DiscountAmount decimal.Decimal    `json:"discountAmount"`
	PayableAmount  decimal.Decimal    `json:"payableAmount"`
	SeatNumber     *int               `json:"seatNumber,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	Lines          []HistoryLine      `json:"lines"`
}

func NewHistoryEntry(o entity.Order) HistoryEntry {
	e := HistoryEntry{
		ID:             o.ID,
		ShortID:        ShortID(o.ID),
		Status:         o.Status,
		Badge:          BadgeFor(o.Status),
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		PayableAmount:  o.PayableAmount(),
		SeatNumber:     o.SeatNumber,
		CreatedAt:      o.CreatedAt,
		Lines:          make([]HistoryLine, 0, len(o.OrderItems)),
	}
	for _, it := range o.OrderItems {
		e.ItemCount += it.Quantity
		line := HistoryLine{
			ID: it.ID, Name: it.Name, Price: it.Price, Quantity: it.Quantity,
			LineTotal: it.LineTotal(),
		}
		if it.Restaurant != nil {
			line.RestaurantName = it.Restaurant.Name
		}
		e.Lines = append(e.Lines, line)
	}
	return e
}

// OrderHistory is the read-only view over the order list.
type OrderHistory struct {
	Orders *OrderService
}

func NewOrderHistory(orders *OrderService) *OrderHistory {
	return &OrderHistory{Orders: orders}
}

func (h *OrderHistory) List(ctx context.Context, scope Scope) ([]HistoryEntry, error) {
	orders, err := h.Orders.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewHistoryEntry(o))
	}
	return out, nil
}
