package services

import (
	"context"
	"testing"

	"github.com/jefin3273/connect-crave/configs"
	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/pkg/cart"
	"github.com/jefin3273/connect-crave/pkg/discount"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (*CartService, uint) {
	t.Helper()
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Spice Route", 4.7)
	orders := newOrderService(db, configs.VisibilitySession, nil)
	return NewCartService(orders, discount.NewCatalog(discount.DefaultPartners()...)), r.ID
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	carts, rid := newCartService(t)

	_, err := carts.Add("a", cart.Item{ID: "thali", Name: "Thali", Price: dec("9"), Quantity: 1, RestaurantID: rid})
	require.NoError(t, err)

	assert.Equal(t, 1, carts.Get("a").TotalItems)
	assert.Equal(t, 0, carts.Get("b").TotalItems)
}

func TestCartService_AddInvalidItem(t *testing.T) {
	carts, _ := newCartService(t)

	_, err := carts.Add("a", cart.Item{Name: "", Price: dec("1"), RestaurantID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCartService_DiscountDroppedWhenTotalChanges(t *testing.T) {
	carts, rid := newCartService(t)
	_, err := carts.Add("s", cart.Item{ID: "thali", Name: "Thali", Price: dec("10"), Quantity: 1, RestaurantID: rid})
	require.NoError(t, err)

	v, err := carts.ApplyDiscount("s", "store_b")
	require.NoError(t, err)
	require.NotNil(t, v.Discount)
	assertDecimal(t, "10", v.Discount.Amount)
	assertDecimal(t, "0", v.Payable)

	v, err = carts.UpdateQuantity("s", "thali", 0)
	require.NoError(t, err)
	assert.NotNil(t, v.Discount, "a rejected decrement leaves the total and the discount alone")

	v, err = carts.UpdateQuantity("s", "thali", 3)
	require.NoError(t, err)
	assert.Nil(t, v.Discount)
	assertDecimal(t, "30", v.Payable)
}

func TestCartService_ApplyDiscountReplacesSelection(t *testing.T) {
	carts, rid := newCartService(t)
	_, err := carts.Add("s", cart.Item{Name: "Thali", Price: dec("50"), Quantity: 1, RestaurantID: rid})
	require.NoError(t, err)

	_, err = carts.ApplyDiscount("s", "mall_a")
	require.NoError(t, err)
	v, err := carts.ApplyDiscount("s", "shop_c")
	require.NoError(t, err)

	assert.Equal(t, "shop_c", v.Discount.Partner.ID)
	assertDecimal(t, "4.5", v.Discount.Amount)

	_, err = carts.ApplyDiscount("s", "unknown")
	assert.ErrorIs(t, err, ErrUnknownPartner)

	v = carts.ClearDiscount("s")
	assert.Nil(t, v.Discount)
}

func TestCartService_ApplyDiscountToEmptyCart(t *testing.T) {
	carts, _ := newCartService(t)

	_, err := carts.ApplyDiscount("s", "mall_a")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCartService_RemoveUnknownItem(t *testing.T) {
	carts, _ := newCartService(t)

	_, err := carts.Remove("s", "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = carts.UpdateQuantity("s", "nope", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCartService_Checkout(t *testing.T) {
	carts, rid := newCartService(t)
	scope := Scope{SessionID: "s", SeatNumber: 7}
	_, err := carts.Add("s", cart.Item{ID: "thali", Name: "Thali", Price: dec("9.50"), Quantity: 2, RestaurantID: rid})
	require.NoError(t, err)
	_, err = carts.Add("s", cart.Item{ID: "lassi", Name: "Lassi", Price: dec("3"), Quantity: 1, RestaurantID: rid})
	require.NoError(t, err)
	_, err = carts.ApplyDiscount("s", "mall_a")
	require.NoError(t, err)

	o, err := carts.Checkout(context.Background(), scope, "")
	require.NoError(t, err)

	assertDecimal(t, "22", o.TotalAmount)
	assertDecimal(t, "12", o.DiscountAmount)
	assertDecimal(t, "10", o.PayableAmount())
	require.Len(t, o.OrderItems, 2)
	assert.Equal(t, "Thali", o.OrderItems[0].Name)
	require.NotNil(t, o.SeatNumber)
	assert.Equal(t, 7, *o.SeatNumber)

	v := carts.Get("s")
	assert.Empty(t, v.Items)
	assert.Nil(t, v.Discount)

	_, err = carts.Checkout(context.Background(), scope, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCartService_CheckoutFailureKeepsCart(t *testing.T) {
	db, sm := newFailingDB(t)
	sm.ExpectBegin().WillReturnError(assert.AnError)
	carts := NewCartService(newOrderService(db, configs.VisibilitySession, nil), discount.NewCatalog(discount.DefaultPartners()...))
	_, err := carts.Add("s", cart.Item{Name: "Thali", Price: dec("5"), Quantity: 1, RestaurantID: 1})
	require.NoError(t, err)

	_, err = carts.Checkout(context.Background(), Scope{SessionID: "s"}, "")
	assert.ErrorIs(t, err, ErrOrderCreationFailed)
	assert.Len(t, carts.Get("s").Items, 1)
}

func TestCartService_CheckoutDoesNotHoldSessionLock(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Spice Route", 4.7)
	started, release := make(chan struct{}), make(chan struct{})
	pub := &mockPublisher{}
	pub.On("PublishOrderPlaced", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()
	carts := NewCartService(newOrderService(db, configs.VisibilitySession, pub), discount.NewCatalog(discount.DefaultPartners()...))
	scope := Scope{SessionID: "s", SeatNumber: 4}
	_, err := carts.Add("s", cart.Item{ID: "thali", Name: "Thali", Price: dec("9"), Quantity: 1, RestaurantID: r.ID})
	require.NoError(t, err)

	type result struct {
		order *entity.Order
		err   error
	}
	done := make(chan result, 1)
	go func() {
		o, err := carts.Checkout(context.Background(), scope, "")
		done <- result{o, err}
	}()
	<-started

	// order is stored and being announced; the session must still respond
	assert.Len(t, carts.Get("s").Items, 1)
	_, err = carts.Add("s", cart.Item{ID: "lassi", Name: "Lassi", Price: dec("3"), Quantity: 1, RestaurantID: r.ID})
	require.NoError(t, err)
	_, err = carts.Checkout(context.Background(), scope, "")
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(release)
	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.order.OrderItems, 1)
	assert.Equal(t, "Thali", res.order.OrderItems[0].Name)

	left := carts.Get("s").Items
	require.Len(t, left, 1, "lines added during checkout stay in the cart")
	assert.Equal(t, "lassi", left[0].ID)
	pub.AssertExpectations(t)
}

func TestCartService_Drop(t *testing.T) {
	carts, rid := newCartService(t)
	_, err := carts.Add("s", cart.Item{Name: "Thali", Price: dec("5"), Quantity: 1, RestaurantID: rid})
	require.NoError(t, err)
	require.Equal(t, 1, carts.Sessions())

	carts.Drop("s")
	assert.Equal(t, 0, carts.Sessions())
	assert.Empty(t, carts.Get("s").Items)
}
