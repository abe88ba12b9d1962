package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID       string          `gorm:"primaryKey;size:36" json:"id"`
	Name     string          `gorm:"not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Position int             `gorm:"not null;default:0" json:"-"` // line order within the order

	OrderID string `gorm:"size:36;index;not null" json:"orderId"`

	RestaurantID uint        `gorm:"index;not null" json:"restaurantId"`
	Restaurant   *Restaurant `json:"-"` // preload only for the name

	CreatedAt time.Time `json:"-"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

// LineTotal is price * quantity.
func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
