package routes

import (
	"github.com/foodcartapp/foodcart-api/controllers"
	"github.com/foodcartapp/foodcart-api/middlewares"
	"github.com/gin-gonic/gin"
)

func RestaurantRoutes(server *gin.Engine) {
	manager := server.Group("/manager", middlewares.Authenticate(), middlewares.RequireManager())
	{
		manager.GET("/restaurants", controllers.GetRestaurants)
		manager.GET("/availability", controllers.GetAvailabilityMatrix)
		manager.POST("/restaurant", controllers.CreateRestaurant)
		manager.PUT("/restaurant/:id", controllers.UpdateRestaurant)
		manager.DELETE("/restaurant/:id", controllers.DeleteRestaurant)
		manager.POST("/menu-item", controllers.UpsertMenuItem)
	}
}
