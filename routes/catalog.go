package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/config"
	productControllers "github.com/Rashii1218/resinArtWebsite/controllers/product"
	"github.com/Rashii1218/resinArtWebsite/middleware"
)

// SetupCatalogRoutes registers products and categories: public reads,
// admin-gated mutation.
func SetupCatalogRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	requireAdmin := middleware.RequireAdmin(db, cfg.JWTSecret)

	products := api.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/featured", productControllers.GetFeaturedProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))

		products.POST("", requireAdmin, productControllers.CreateProduct(db))
		products.PATCH("/:id", requireAdmin, productControllers.UpdateProduct(db))
		products.DELETE("/:id", requireAdmin, productControllers.DeleteProduct(db))
	}

	categories := api.Group("/categories")
	{
		categories.GET("", productControllers.GetAllCategories(db))

		categories.POST("", requireAdmin, productControllers.CreateCategory(db))
		categories.PATCH("/:id", requireAdmin, productControllers.UpdateCategory(db))
		categories.DELETE("/:id", requireAdmin, productControllers.DeleteCategory(db))
	}
}
