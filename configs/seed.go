package configs

import (
	"github.com/jefin3273/connect-crave/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedStall struct {
	restaurant entity.Restaurant
	menu       []entity.MenuItem
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var demoStalls = []seedStall{
	{
		restaurant: entity.Restaurant{
			Name: "Spice Route", Description: "South Indian breakfast all day",
			Image: "/images/spice-route.jpg", Rating: 4.7, Cuisine: "South Indian",
			Tags: []string{"vegetarian", "breakfast"}, Address: "Food Court, Stall 1",
		},
		menu: []entity.MenuItem{
			{Name: "Masala Dosa", Price: price("120"), Available: true},
			{Name: "Idli Sambar", Price: price("80"), Available: true},
			{Name: "Filter Coffee", Price: price("40"), Available: true},
		},
	},
	{
		restaurant: entity.Restaurant{
			Name: "Burger Barn", Description: "Smash burgers and fries",
			Image: "/images/burger-barn.jpg", Rating: 4.3, Cuisine: "American",
			Tags: []string{"burgers", "fast food"}, Address: "Food Court, Stall 2",
		},
		menu: []entity.MenuItem{
			{Name: "Classic Smash", Price: price("220"), Available: true},
			{Name: "Loaded Fries", Price: price("140"), Available: true},
		},
	},
	{
		restaurant: entity.Restaurant{
			Name: "Wok This Way", Description: "Noodles and rice bowls from the wok",
			Image: "/images/wok-this-way.jpg", Rating: 4.5, Cuisine: "Chinese",
			Tags: []string{"noodles", "spicy"}, Address: "Food Court, Stall 3",
		},
		menu: []entity.MenuItem{
			{Name: "Hakka Noodles", Price: price("180"), Available: true},
			{Name: "Chilli Paneer", Price: price("200"), Available: true},
		},
	},
	{
		restaurant: entity.Restaurant{
			Name: "Scoop Street", Description: "Gelato and shakes",
			Image: "/images/scoop-street.jpg", Rating: 4.1, Cuisine: "Desserts",
			Tags: []string{"dessert", "cold"}, Address: "Food Court, Stall 4",
		},
		menu: []entity.MenuItem{
			{Name: "Two Scoop Cup", Price: price("150"), Available: true},
			{Name: "Cold Coffee Shake", Price: price("130"), Available: true},
		},
	},
}

// SeedRestaurants inserts the demo food court stalls once, keyed by name.
func SeedRestaurants(db *gorm.DB, log *zap.Logger) error {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, s := range demoStalls {
			var count int64
			if err := tx.Model(&entity.Restaurant{}).Where("name = ?", s.restaurant.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			r := s.restaurant
			r.MenuItems = append([]entity.MenuItem(nil), s.menu...)
			if err := tx.Create(&r).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("restaurants seeded", zap.Int("created", created))
	return nil
}
