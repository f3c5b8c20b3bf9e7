package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/config"
	cartControllers "github.com/Rashii1218/resinArtWebsite/controllers/cart"
	"github.com/Rashii1218/resinArtWebsite/middleware"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints, scoped to the
// caller's own cart.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cart := api.Group("/cart")
	cart.Use(middleware.RequireAuth(db, cfg.JWTSecret))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/items", cartControllers.AddItem(db))
		cart.PATCH("/items/:productId", cartControllers.UpdateItem(db))
		cart.DELETE("/items/:productId", cartControllers.RemoveItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}
}
