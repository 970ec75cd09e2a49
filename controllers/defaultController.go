package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Foodcart API.

The following are the endpoints for this API:

PUBLIC
- GET "/api/products" - Products available in at least one restaurant
- GET "/api/banners" - Front page banners
- POST "/api/order" - Place an order
- POST "/auth/login" - Staff login

MANAGER (JWT required)
- GET "/manager/orders" - Unprocessed orders with suitable restaurants and distances
- GET "/manager/orders/all" - All orders, paginated
- GET "/manager/orders/undelivered-count" - Undelivered order count
- GET "/manager/order/:orderId" - Order by ID
- PATCH "/manager/order/:orderId/status" - Advance order status
- GET "/manager/restaurants" - Restaurant list
- GET "/manager/availability" - Product availability matrix
- POST "/manager/restaurant" - Create restaurant
- PUT "/manager/restaurant/:id" - Update restaurant
- DELETE "/manager/restaurant/:id" - Delete restaurant
- POST "/manager/menu-item" - Set product availability at a restaurant
- POST "/manager/product" - Create product
- POST "/manager/product-category" - Create product category
- POST "/manager/product-image" - Upload product image
- GET "/manager/products" - All products, paginated
- GET "/manager/product/:id" - Product by ID`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// GetBanners serves the static front page banner set.
// TODO move banner data to the database once the frontend can manage it
func GetBanners(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, []gin.H{
		{
			"title": "Burger",
			"src":   "/media/burger.jpg",
			"text":  "Tasty Burger at your door step",
		},
		{
			"title": "Spices",
			"src":   "/media/food.jpg",
			"text":  "All Cuisines",
		},
		{
			"title": "New York",
			"src":   "/media/tasty.jpg",
			"text":  "Food is incomplete without a tasty dessert",
		},
	})
}
