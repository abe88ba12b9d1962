package entity

import (
	"time"
)

type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Rating      float64   `gorm:"index;not null;default:0" json:"rating"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	Cuisine     string    `json:"cuisine"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// preload only for the detail endpoint
	MenuItems []MenuItem `json:"-"`
}
