package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodcartapp/foodcart-api/initializers"
	"github.com/foodcartapp/foodcart-api/models"
)

func setupRestaurantTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	initializers.DB = setupTestDB(t)

	router := gin.New()
	router.GET("/api/products", GetAvailableProducts)
	router.GET("/manager/restaurants", GetRestaurants)
	router.GET("/manager/availability", GetAvailabilityMatrix)
	router.POST("/manager/restaurant", CreateRestaurant)
	router.DELETE("/manager/restaurant/:id", DeleteRestaurant)
	router.POST("/manager/menu-item", UpsertMenuItem)
	router.POST("/manager/product", CreateProduct)
	return router
}

func TestUpsertMenuItemUpdatesExistingPair(t *testing.T) {
	router := setupRestaurantTest(t)
	db := initializers.DB

	restaurant := models.Restaurant{Name: "Р1", Address: "адрес"}
	require.NoError(t, db.Create(&restaurant).Error)
	product := seedProduct(t, db, "P1", "100")

	body := fmt.Sprintf(`{"restaurantId": %d, "productId": %d, "availability": true}`,
		restaurant.ID, product.ID)
	assert.Equal(t, http.StatusCreated, postJSON(router, "/manager/menu-item", body).Code)

	// Same pair again flips availability instead of violating the
	// unique constraint.
	body = fmt.Sprintf(`{"restaurantId": %d, "productId": %d, "availability": false}`,
		restaurant.ID, product.ID)
	assert.Equal(t, http.StatusOK, postJSON(router, "/manager/menu-item", body).Code)

	var count int64
	db.Model(&models.RestaurantMenuItem{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var item models.RestaurantMenuItem
	require.NoError(t, db.First(&item).Error)
	assert.False(t, item.Availability)
}

func TestDeleteRestaurantCascadesMenuItems(t *testing.T) {
	router := setupRestaurantTest(t)
	db := initializers.DB

	restaurant := models.Restaurant{Name: "Р1", Address: "адрес"}
	require.NoError(t, db.Create(&restaurant).Error)
	product := seedProduct(t, db, "P1", "100")
	require.NoError(t, db.Create(&models.RestaurantMenuItem{
		RestaurantID: restaurant.ID, ProductID: product.ID, Availability: true,
	}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/manager/restaurant/%d", restaurant.ID), nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.RestaurantMenuItem{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetAvailableProductsCatalog(t *testing.T) {
	router := setupRestaurantTest(t)
	db := initializers.DB

	category := models.ProductCategory{Name: "Бургеры"}
	require.NoError(t, db.Create(&category).Error)

	stocked := models.Product{
		Name:          "Бургер",
		CategoryID:    &category.ID,
		Price:         decimal.RequireFromString("250.00"),
		Image:         "https://cdn.example.com/burger.jpg",
		SpecialStatus: true,
		Description:   "с котлетой",
	}
	require.NoError(t, db.Create(&stocked).Error)
	seedProduct(t, db, "Никем не продаётся", "10")

	restaurant := models.Restaurant{Name: "Р1", Address: "адрес"}
	require.NoError(t, db.Create(&restaurant).Error)
	require.NoError(t, db.Create(&models.RestaurantMenuItem{
		RestaurantID: restaurant.ID, ProductID: stocked.ID, Availability: true,
	}).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1, "only products stocked somewhere appear in the catalog")

	entry := products[0]
	assert.Equal(t, "Бургер", entry["name"])
	assert.Equal(t, true, entry["special_status"])
	assert.Equal(t, "https://cdn.example.com/burger.jpg", entry["image"])
	assert.Equal(t, "Бургеры", entry["category"].(map[string]any)["name"])
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	router := setupRestaurantTest(t)

	w := postJSON(router, "/manager/product", `{"name": "P1", "price": "-10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	initializers.DB.Model(&models.Product{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetRestaurantsOrderedByName(t *testing.T) {
	router := setupRestaurantTest(t)
	db := initializers.DB

	require.NoError(t, db.Create(&models.Restaurant{Name: "Ббб", Address: "2"}).Error)
	require.NoError(t, db.Create(&models.Restaurant{Name: "Ааа", Address: "1"}).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manager/restaurants", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Restaurants, 2)
	assert.Equal(t, "Ааа", response.Restaurants[0].Name)
	assert.Equal(t, "Ббб", response.Restaurants[1].Name)
}
