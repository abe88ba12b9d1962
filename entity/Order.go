package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is written once together with its items. Only Status changes afterwards.
type Order struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Status      OrderStatus     `gorm:"size:16;index;not null;default:'PENDING'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`

	// discount from a loyalty partner, already validated server-side
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discountAmount"`
	PartnerID      *string         `gorm:"size:64" json:"partnerId,omitempty"`

	SeatNumber     *int    `json:"seatNumber,omitempty"`
	SessionID      *string `gorm:"size:36;index" json:"-"`
	IdempotencyKey *string `gorm:"size:128;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	OrderItems []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"orderItems"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// PayableAmount is what the customer owes after the partner discount.
func (o *Order) PayableAmount() decimal.Decimal {
	p := o.TotalAmount.Sub(o.DiscountAmount)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}
