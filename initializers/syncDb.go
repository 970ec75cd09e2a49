package initializers

import (
	"github.com/sirupsen/logrus"

	"github.com/foodcartapp/foodcart-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.Restaurant{},
		&models.ProductCategory{},
		&models.Product{},
		&models.RestaurantMenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coordinate{},
		&models.StaffUser{},
	)
	logrus.Println("Database synced successfully.")
}
