package routes

import (
	"github.com/foodcartapp/foodcart-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/api/banners", controllers.GetBanners)
}
