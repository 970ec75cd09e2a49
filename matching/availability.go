package matching

import (
	"gorm.io/gorm"

	"github.com/foodcartapp/foodcart-api/models"
)

// AvailabilityIndex maps each requested product id to the restaurants
// currently stocking it. One query over the menu item table, no
// per-product loop.
func AvailabilityIndex(db *gorm.DB, productIDs []uint) (map[uint][]uint, error) {
	index := make(map[uint][]uint, len(productIDs))
	if len(productIDs) == 0 {
		return index, nil
	}

	var rows []models.RestaurantMenuItem
	err := db.
		Where("availability = ? AND product_id IN ?", true, productIDs).
		Order("restaurant_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		index[row.ProductID] = append(index[row.ProductID], row.RestaurantID)
	}
	return index, nil
}

// AvailableProducts returns products stocked by at least one restaurant,
// with their categories preloaded.
func AvailableProducts(db *gorm.DB) ([]models.Product, error) {
	stocked := db.Model(&models.RestaurantMenuItem{}).
		Select("product_id").
		Where("availability = ?", true)

	var products []models.Product
	err := db.Preload("Category").Where("id IN (?)", stocked).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
