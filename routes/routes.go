package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/config"
)

// SetupRoutes is the single entry-point that wires every route group under
// /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db, cfg)
	SetupCatalogRoutes(api, db, cfg)
	SetupCartRoutes(api, db, cfg)
	SetupOrderRoutes(api, db, cfg)
	SetupAdminRoutes(api, db, cfg)
	SetupImageRoutes(api, db, cfg)
}
