package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/config"
	imageControllers "github.com/Rashii1218/resinArtWebsite/controllers/images"
	"github.com/Rashii1218/resinArtWebsite/middleware"
)

// SetupImageRoutes registers the image hosting proxy, admin-only since it is
// part of catalog management.
func SetupImageRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	host := imageControllers.NewHostClient(cfg.Images)

	images := api.Group("/images")
	images.Use(middleware.RequireAdmin(db, cfg.JWTSecret))
	{
		images.POST("/upload", imageControllers.UploadImage(host))
		images.DELETE("/:publicId", imageControllers.DeleteImage(host))
	}
}
