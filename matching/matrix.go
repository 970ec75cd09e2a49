package matching

import (
	"gorm.io/gorm"

	"github.com/foodcartapp/foodcart-api/models"
)

type ProductAvailability struct {
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"productName"`
	Availability []bool `json:"availability"`
}

// AvailabilityMatrix builds the product-by-restaurant availability grid
// for the manager console. Restaurants are ordered by name; each
// product row carries one flag per restaurant in that same order.
// Defaults are laid down explicitly before actual menu rows overlay
// them, so restaurants with no row for a product read as false.
func AvailabilityMatrix(db *gorm.DB) ([]models.Restaurant, []ProductAvailability, error) {
	var restaurants []models.Restaurant
	if err := db.Order("name").Find(&restaurants).Error; err != nil {
		return nil, nil, err
	}

	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return nil, nil, err
	}

	var menuItems []models.RestaurantMenuItem
	if err := db.Find(&menuItems).Error; err != nil {
		return nil, nil, err
	}

	byProduct := make(map[uint]map[uint]bool, len(products))
	for _, item := range menuItems {
		if byProduct[item.ProductID] == nil {
			byProduct[item.ProductID] = make(map[uint]bool)
		}
		byProduct[item.ProductID][item.RestaurantID] = item.Availability
	}

	rows := make([]ProductAvailability, 0, len(products))
	for _, product := range products {
		availability := make(map[uint]bool, len(restaurants))
		for _, restaurant := range restaurants {
			availability[restaurant.ID] = false
		}
		for restaurantID, available := range byProduct[product.ID] {
			availability[restaurantID] = available
		}

		ordered := make([]bool, 0, len(restaurants))
		for _, restaurant := range restaurants {
			ordered = append(ordered, availability[restaurant.ID])
		}
		rows = append(rows, ProductAvailability{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Availability: ordered,
		})
	}
	return restaurants, rows, nil
}
