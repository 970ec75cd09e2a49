package models

import "gorm.io/gorm"

type Restaurant struct {
	gorm.Model
	Name         string               `json:"name" binding:"required"`
	Address      string               `json:"address"`
	ContactPhone string               `json:"contactPhone"`
	MenuItems    []RestaurantMenuItem `json:"menuItems,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

// RestaurantMenuItem is the single source of truth for which restaurant
// currently sells which product. One row per (restaurant, product) pair.
type RestaurantMenuItem struct {
	gorm.Model
	RestaurantID uint `json:"restaurantId" gorm:"uniqueIndex:idx_restaurant_product"`
	ProductID    uint `json:"productId" gorm:"uniqueIndex:idx_restaurant_product"`
	Availability bool `json:"availability" gorm:"index"`
}
