// Package cart is the in-memory cart of one browsing session.
package cart

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
	ErrInvalidItem  = errors.New("invalid cart item")
)

type Item struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	RestaurantID uint            `json:"restaurantId"`
}

func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Store keeps lines in insertion order. It is not safe for concurrent use.
type Store struct {
	items []Item
}

func New() *Store { return &Store{} }

// Add appends a line, or increases the quantity of the line with the same id.
func (s *Store) Add(it Item) (Item, error) {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" || it.Price.IsNegative() || !it.Price.Equal(it.Price.Round(2)) || it.RestaurantID == 0 {
		return Item{}, ErrInvalidItem
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}

	if i := s.index(it.ID); i >= 0 {
		s.items[i].Quantity += it.Quantity
		return s.items[i], nil
	}
	s.items = append(s.items, it)
	return it, nil
}

// UpdateQuantity sets the quantity of a line. A quantity below 1 leaves the line
// untouched; removal is always explicit.
func (s *Store) UpdateQuantity(id string, qty int) (Item, error) {
	i := s.index(id)
	if i < 0 {
		return Item{}, ErrItemNotFound
	}
	if qty >= 1 {
		s.items[i].Quantity = qty
	}
	return s.items[i], nil
}

func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Store) Clear() { s.items = nil }

// Items returns a copy of the lines.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// TotalPrice is recomputed from the lines on every call.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (s *Store) TotalItemCount() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
