package discount

import "github.com/shopspring/decimal"

// Applied is an active discount selection.
type Applied struct {
	Partner Partner         `json:"partner"`
	Amount  decimal.Decimal `json:"appliedAmount"`
	Basis   decimal.Decimal `json:"basis"` // cart total the amount was computed against
}

// Selector holds at most one partner selection for a cart. The selection is only
// valid for the total it was computed against.
type Selector struct {
	current *Applied
}

// Apply replaces any previous selection.
func (s *Selector) Apply(p Partner, total decimal.Decimal) Applied {
	a := Applied{Partner: p, Amount: Quote(total, p), Basis: total}
	s.current = &a
	return a
}

// Observe clears the selection when total moved away from the one it was computed
// against. It reports whether a selection was dropped.
func (s *Selector) Observe(total decimal.Decimal) bool {
	if s.current == nil || s.current.Basis.Equal(total) {
		return false
	}
	s.current = nil
	return true
}

func (s *Selector) Clear() { s.current = nil }

func (s *Selector) Current() (Applied, bool) {
	if s.current == nil {
		return Applied{}, false
	}
	return *s.current, true
}
