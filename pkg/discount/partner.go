package discount

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var ErrUnknownPartner = errors.New("unknown discount partner")

// Partner is a loyalty program whose points convert into a bounded discount.
type Partner struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Points        int64           `json:"points"`
	ValuePerPoint decimal.Decimal `json:"valuePerPoint"`
}

// MaxValue is points * valuePerPoint, never below zero.
func (p Partner) MaxValue() decimal.Decimal {
	v := decimal.NewFromInt(p.Points).Mul(p.ValuePerPoint)
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// Catalog is read-only reference data.
type Catalog struct {
	partners map[string]Partner
}

func NewCatalog(partners ...Partner) *Catalog {
	m := make(map[string]Partner, len(partners))
	for _, p := range partners {
		m[p.ID] = p
	}
	return &Catalog{partners: m}
}

// DefaultPartners are the mall partners the food court currently advertises.
func DefaultPartners() []Partner {
	return []Partner{
		{ID: "mall_a", Name: "Mall A Rewards", Points: 1200, ValuePerPoint: decimal.RequireFromString("0.01")},
		{ID: "store_b", Name: "Store B Points", Points: 500, ValuePerPoint: decimal.RequireFromString("0.02")},
		{ID: "shop_c", Name: "Shop C Credits", Points: 300, ValuePerPoint: decimal.RequireFromString("0.015")},
	}
}

func (c *Catalog) Find(id string) (Partner, error) {
	p, ok := c.partners[id]
	if !ok {
		return Partner{}, ErrUnknownPartner
	}
	return p, nil
}

// List returns partners sorted by id.
func (c *Catalog) List() []Partner {
	out := make([]Partner, 0, len(c.partners))
	for _, p := range c.partners {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
