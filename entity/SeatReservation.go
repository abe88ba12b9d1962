package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatReservation backs a seat session. ActiveSeat holds the seat number while the
// reservation is live and NULL once released, so the unique index only blocks
// concurrent live reservations of the same seat.
type SeatReservation struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	SeatNumber int        `gorm:"index;not null" json:"seatNumber"`
	ActiveSeat *int       `gorm:"uniqueIndex" json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReleasedAt *time.Time `json:"releasedAt,omitempty"`
}

func (r *SeatReservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *SeatReservation) Active() bool { return r.ReleasedAt == nil }
