package routes

import (
	"github.com/foodcartapp/foodcart-api/controllers"
	"github.com/foodcartapp/foodcart-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/api/products", controllers.GetAvailableProducts)

	manager := server.Group("/manager", middlewares.Authenticate(), middlewares.RequireManager())
	{
		manager.POST("/product", controllers.CreateProduct)
		manager.POST("/product-category", controllers.CreateProductCategory)
		manager.POST("/product-image", controllers.UploadProductImage)
		manager.GET("/products", controllers.GetProducts)
		manager.GET("/product/:id", controllers.GetProduct)
	}
}
