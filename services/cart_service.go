package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jefin3273/connect-crave/entity"
	"github.com/jefin3273/connect-crave/pkg/cart"
	"github.com/jefin3273/connect-crave/pkg/discount"

	"github.com/shopspring/decimal"
)

// cartSession is the cart and discount selection of one seat session.
type cartSession struct {
	mu       sync.Mutex
	store    *cart.Store
	selector discount.Selector
	checking bool // a checkout is in flight
}

// observe drops a discount computed against an older total.
func (cs *cartSession) observe() {
	cs.selector.Observe(cs.store.TotalPrice())
}

func (cs *cartSession) view() CartView {
	v := CartView{
		Items:      cs.store.Items(),
		TotalPrice: cs.store.TotalPrice(),
		TotalItems: cs.store.TotalItemCount(),
	}
	v.Payable = v.TotalPrice
	if a, ok := cs.selector.Current(); ok {
		v.Discount = &a
		v.Payable = v.TotalPrice.Sub(a.Amount)
	}
	return v
}

type CartView struct {
	Items      []cart.Item       `json:"items"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	TotalItems int               `json:"totalItems"`
	Discount   *discount.Applied `json:"discount,omitempty"`
	Payable    decimal.Decimal   `json:"payableAmount"`
}

// CartService keeps one in-memory cart per seat session. Carts live until checkout
// or until the seat session is released; nothing is persisted.
type CartService struct {
	Orders   *OrderService
	Partners *discount.Catalog

	mu       sync.Mutex
	sessions map[string]*cartSession
}

func NewCartService(orders *OrderService, partners *discount.Catalog) *CartService {
	return &CartService{Orders: orders, Partners: partners, sessions: map[string]*cartSession{}}
}

func (s *CartService) session(id string) *cartSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions == nil {
		s.sessions = map[string]*cartSession{}
	}
	cs, ok := s.sessions[id]
	if !ok {
		cs = &cartSession{store: cart.New()}
		s.sessions[id] = cs
	}
	return cs
}

// with runs fn with the session locked and returns the resulting view.
func (s *CartService) with(sessionID string, fn func(cs *cartSession) error) (CartView, error) {
	cs := s.session(sessionID)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if err := fn(cs); err != nil {
		return CartView{}, err
	}
	return cs.view(), nil
}

func (s *CartService) Get(sessionID string) CartView {
	v, _ := s.with(sessionID, func(*cartSession) error { return nil })
	return v
}

func (s *CartService) Add(sessionID string, it cart.Item) (CartView, error) {
	return s.with(sessionID, func(cs *cartSession) error {
		if _, err := cs.store.Add(it); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		cs.observe()
		return nil
	})
}

// UpdateQuantity ignores quantities below 1; removing a line is a separate call.
func (s *CartService) UpdateQuantity(sessionID, itemID string, qty int) (CartView, error) {
	return s.with(sessionID, func(cs *cartSession) error {
		if _, err := cs.store.UpdateQuantity(itemID, qty); err != nil {
			return err
		}
		cs.observe()
		return nil
	})
}

func (s *CartService) Remove(sessionID, itemID string) (CartView, error) {
	return s.with(sessionID, func(cs *cartSession) error {
		if err := cs.store.Remove(itemID); err != nil {
			return err
		}
		cs.observe()
		return nil
	})
}

func (s *CartService) Clear(sessionID string) CartView {
	v, _ := s.with(sessionID, func(cs *cartSession) error {
		cs.store.Clear()
		cs.selector.Clear()
		return nil
	})
	return v
}

// ApplyDiscount selects a partner, replacing any earlier selection.
func (s *CartService) ApplyDiscount(sessionID, partnerID string) (CartView, error) {
	p, err := s.Partners.Find(partnerID)
	if err != nil {
		return CartView{}, fmt.Errorf("%w: %w", ErrInvalidDiscount, err)
	}
	return s.with(sessionID, func(cs *cartSession) error {
		if cs.store.Len() == 0 {
			return ErrEmptyCart
		}
		cs.selector.Apply(p, cs.store.TotalPrice())
		return nil
	})
}

func (s *CartService) ClearDiscount(sessionID string) CartView {
	v, _ := s.with(sessionID, func(cs *cartSession) error {
		cs.selector.Clear()
		return nil
	})
	return v
}

// Checkout submits the cart as an order and removes the submitted lines once the
// order is stored. The session stays usable while the order is written.
func (s *CartService) Checkout(ctx context.Context, scope Scope, idempotencyKey string) (*entity.Order, error) {
	cs := s.session(scope.SessionID)

	cs.mu.Lock()
	if cs.checking {
		cs.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	if cs.store.Len() == 0 {
		cs.mu.Unlock()
		return nil, ErrEmptyCart
	}
	lines := cs.store.Items()
	req := &CreateOrderReq{IdempotencyKey: idempotencyKey}
	for _, it := range lines {
		req.Items = append(req.Items, OrderLineIn{
			Name:         it.Name,
			Price:        it.Price,
			Quantity:     it.Quantity,
			RestaurantID: it.RestaurantID,
		})
	}
	if a, ok := cs.selector.Current(); ok {
		req.Discount = &DiscountIn{PartnerID: a.Partner.ID, Amount: a.Amount}
	}
	cs.checking = true
	cs.mu.Unlock()

	o, err := s.Orders.Create(ctx, scope, req)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.checking = false
	if err != nil {
		return nil, err
	}
	for _, it := range lines {
		_ = cs.store.Remove(it.ID) // may already be gone
	}
	cs.selector.Clear()
	return o, nil
}

// Drop tears down the cart of a released seat session.
func (s *CartService) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *CartService) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
