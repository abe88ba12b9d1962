package services

import (
	"context"
	"testing"
	"time"

	"github.com/jefin3273/connect-crave/configs"
	"github.com/jefin3273/connect-crave/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		status   entity.OrderStatus
		expected string
	}{
		{entity.OrderStatusPending, "Pending"},
		{entity.OrderStatusConfirmed, "Confirmed"},
		{entity.OrderStatusPreparing, "Preparing"},
		{entity.OrderStatusReady, "Ready"},
		{entity.OrderStatusDelivered, "Delivered"},
		{entity.OrderStatusCancelled, "Cancelled"},
		{"REFUNDED", "Pending"},
		{"", "Pending"},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.status), func(t *testing.T) {
			assert.Equal(t, testCase.expected, BadgeFor(testCase.status).Label)
		})
	}
	assert.Equal(t, BadgeFor(entity.OrderStatusPending), BadgeFor("WHATEVER"))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f1c2a9e-5b7d...", ShortID("3f1c2a9e-5b7d-4c1e-9a2f-0d8e6b4a1c3f"))
	assert.Equal(t, "abc...", ShortID("abc"))
}

func TestNewHistoryEntry(t *testing.T) {
	seat := 12
	o := entity.Order{
		ID:             "3f1c2a9e-5b7d-4c1e-9a2f-0d8e6b4a1c3f",
		Status:         "UNKNOWN",
		TotalAmount:    dec("23"),
		DiscountAmount: dec("3"),
		SeatNumber:     &seat,
		CreatedAt:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		OrderItems: []entity.OrderItem{
			{ID: "i1", Name: "Thali", Price: dec("9"), Quantity: 2, Restaurant: &entity.Restaurant{Name: "Spice Route"}},
			{ID: "i2", Name: "Shake", Price: dec("5"), Quantity: 1},
		},
	}

	e := NewHistoryEntry(o)
	assert.Equal(t, "3f1c2a9e-5b7d...", e.ShortID)
	assert.Equal(t, "Pending", e.Badge.Label)
	assert.Equal(t, entity.OrderStatus("UNKNOWN"), e.Status)
	assert.Equal(t, 3, e.ItemCount)
	assertDecimal(t, "20", e.PayableAmount)
	require.Len(t, e.Lines, 2)
	assertDecimal(t, "18", e.Lines[0].LineTotal)
	assert.Equal(t, "Spice Route", e.Lines[0].RestaurantName)
	assert.Empty(t, e.Lines[1].RestaurantName)
}

func TestOrderHistory_List(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Spice Route", 4.7)
	orders := newOrderService(db, configs.VisibilitySession, nil)
	history := NewOrderHistory(orders)
	scope := Scope{SessionID: "s", SeatNumber: 1}

	_, err := orders.Create(context.Background(), scope, &CreateOrderReq{Items: []OrderLineIn{
		{Name: "Thali", Price: dec("9"), Quantity: 2, RestaurantID: r.ID},
	}})
	require.NoError(t, err)

	entries, err := history.List(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].ItemCount)
	assert.Equal(t, "Spice Route", entries[0].Lines[0].RestaurantName)

	_, err = history.List(context.Background(), Scope{})
	assert.ErrorIs(t, err, ErrSessionRequired)
}
