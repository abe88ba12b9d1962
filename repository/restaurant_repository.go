package repository

import (
	"context"

	"github.com/jefin3273/connect-crave/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// ListByRating returns every restaurant, best rated first.
func (r *RestaurantRepository) ListByRating(ctx context.Context) ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.WithContext(ctx).
		Order("rating DESC").Order("id ASC").
		Find(&rests).Error
	return rests, err
}

// FindByID loads a restaurant with its available menu.
func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.WithContext(ctx).
		Preload("MenuItems", "available = ?", true).
		First(&rest, id).Error
	if err != nil {
		return nil, err
	}
	return &rest, nil
}
