package services

import (
	"errors"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/pkg/cart"
	"github.com/jefin3273/connect-crave/pkg/discount"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrPersistence         = errors.New("persistence failure")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrSessionRequired     = errors.New("seat session required")
	ErrIdempotencyConflict = errors.New("idempotency key used by another session")

	ErrInvalidDiscount      = errors.New("invalid discount")
	ErrUnknownPartner       = discount.ErrUnknownPartner
	ErrDiscountExceedsLimit = discount.ErrExceedsLimit

	ErrRestaurantNotFound = errors.New("restaurant not found")

	ErrSeatOutOfRange  = errors.New("seat out of range")
	ErrSeatOccupied    = errors.New("seat occupied")
	ErrSessionNotFound = errors.New("seat session not found")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrItemNotFound       = cart.ErrItemNotFound
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Scope is the seat session a request was made from. The zero value is anonymous.
type Scope struct {
	SessionID  string
	SeatNumber int
}

func (s Scope) Anonymous() bool { return s.SessionID == "" }

// Owns reports whether o was placed from this scope.
func (s Scope) Owns(o *entity.Order) bool {
	if o.SessionID == nil {
		return s.Anonymous()
	}
	return *o.SessionID == s.SessionID
}
