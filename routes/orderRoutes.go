package routes

import (
	"github.com/foodcartapp/foodcart-api/controllers"
	"github.com/foodcartapp/foodcart-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/api/order", controllers.CreateOrder)

	manager := server.Group("/manager", middlewares.Authenticate(), middlewares.RequireManager())
	{
		manager.GET("/orders", controllers.GetUnprocessedOrders)
		manager.GET("/orders/all", controllers.GetOrders)
		manager.GET("/orders/undelivered-count", controllers.GetUndeliveredOrders)
		manager.GET("/order/:orderId", controllers.GetOrderById)
		manager.PATCH("/order/:orderId/status", controllers.UpdateOrderStatus)
	}
}
