package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/auth"
	"github.com/Rashii1218/resinArtWebsite/config"
	authControllers "github.com/Rashii1218/resinArtWebsite/controllers/auth"
	"github.com/Rashii1218/resinArtWebsite/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(db, cfg.JWTSecret))
		authGroup.POST("/login", authControllers.Login(db, cfg.JWTSecret))
		authGroup.POST("/admin/login", authControllers.AdminLogin(db, cfg.JWTSecret))

		// Google sign-in is only live when credentials were configured.
		if cfg.Google != nil {
			provider := auth.NewGoogleProvider(cfg.Google, cfg.FrontendOrigin)
			authGroup.GET("/google", provider.LoginHandler())
			authGroup.GET("/google/callback", provider.CallbackHandler(db, cfg.JWTSecret))
		} else {
			authGroup.GET("/google", googleDisabled)
			authGroup.GET("/google/callback", googleDisabled)
		}

		protected := authGroup.Group("")
		protected.Use(middleware.RequireAuth(db, cfg.JWTSecret))
		{
			protected.GET("/me", authControllers.Me())
			protected.GET("/user/:id", authControllers.GetUserByID(db))
			protected.PATCH("/user/:id", authControllers.UpdatePhoneNumber(db))
		}
	}
}

func googleDisabled(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
}
