package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/foodcartapp/foodcart-api/initializers"
	"github.com/foodcartapp/foodcart-api/matching"
	"github.com/foodcartapp/foodcart-api/models"
)

func GetRestaurants(ctx *gin.Context) {
	var restaurants []models.Restaurant
	if err := initializers.DB.Order("name").Find(&restaurants).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch restaurants", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"restaurants": restaurants})
}

func CreateRestaurant(ctx *gin.Context) {
	var restaurant models.Restaurant
	if err := ctx.ShouldBindJSON(&restaurant); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&restaurant).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create restaurant", err)
		return
	}

	ctx.JSON(http.StatusCreated, restaurant)
}

func UpdateRestaurant(ctx *gin.Context) {
	restaurantId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid restaurant ID", err)
		return
	}

	var restaurant models.Restaurant
	if err := initializers.DB.First(&restaurant, restaurantId).Error; err != nil {
		respondWithError(ctx, http.StatusNotFound, "Restaurant not found", nil)
		return
	}

	var payload models.Restaurant
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updates := map[string]any{
		"name":          payload.Name,
		"address":       payload.Address,
		"contact_phone": payload.ContactPhone,
	}
	if err := initializers.DB.Model(&restaurant).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update restaurant", err)
		return
	}

	ctx.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant cascades to the restaurant's menu items.
func DeleteRestaurant(ctx *gin.Context) {
	restaurantId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid restaurant ID", err)
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurantId).
			Delete(&models.RestaurantMenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Restaurant{}, restaurantId).Error
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete restaurant", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Restaurant deleted successfully."})
}

// UpsertMenuItem sets a product's availability at a restaurant. The
// (restaurant, product) pair is unique, so a second write for the same
// pair updates the existing row.
func UpsertMenuItem(ctx *gin.Context) {
	var payload models.RestaurantMenuItem
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var existing models.RestaurantMenuItem
	err := initializers.DB.
		Where("restaurant_id = ? AND product_id = ?", payload.RestaurantID, payload.ProductID).
		First(&existing).Error

	if err == nil {
		existing.Availability = payload.Availability
		if err := initializers.DB.Save(&existing).Error; err != nil {
			logrus.Println("Update error:", err)
			respondWithError(ctx, http.StatusInternalServerError, "Unable to update menu item", err)
			return
		}
		ctx.JSON(http.StatusOK, existing)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.Println("Database error:", err)
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch menu item", err)
		return
	}

	if err := initializers.DB.Create(&payload).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create menu item", err)
		return
	}

	ctx.JSON(http.StatusCreated, payload)
}

// GetAvailabilityMatrix renders the product-by-restaurant grid the
// manager console shows on its products page.
func GetAvailabilityMatrix(ctx *gin.Context) {
	restaurants, rows, err := matching.AvailabilityMatrix(initializers.DB)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to build availability matrix", err)
		return
	}

	names := make([]gin.H, 0, len(restaurants))
	for _, restaurant := range restaurants {
		names = append(names, gin.H{"id": restaurant.ID, "name": restaurant.Name})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"restaurants": names,
		"products":    rows,
	})
}
