package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/config"
	orderControllers "github.com/Rashii1218/resinArtWebsite/controllers/order"
	"github.com/Rashii1218/resinArtWebsite/middleware"
)

// SetupOrderRoutes registers the customer-facing order endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orders := api.Group("/orders")
	orders.Use(middleware.RequireAuth(db, cfg.JWTSecret))
	{
		orders.POST("", orderControllers.PlaceOrder(db))
		orders.GET("", orderControllers.GetMyOrders(db))
	}
}
