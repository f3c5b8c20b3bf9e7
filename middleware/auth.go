package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/auth"
	"github.com/Rashii1218/resinArtWebsite/models"
)

// UserKey is the gin context key holding the authenticated *models.User.
const UserKey = "user"

// RequireAuth reads the session cookie, verifies the token and loads the
// user. It fails closed: missing cookie, bad token or a deleted user all end
// the request with 401.
func RequireAuth(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(jwtSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, ok := auth.UserIDFromClaims(claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		c.Set(UserKey, &user)
	}
}

// RequireAdmin is RequireAuth plus the admin flag check.
func RequireAdmin(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	requireAuth := RequireAuth(db, jwtSecret)
	return func(c *gin.Context) {
		requireAuth(c)
		if c.IsAborted() {
			return
		}
		if !CurrentUser(c).IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin only."})
			c.Abort()
		}
	}
}

// CurrentUser returns the user set by RequireAuth. Only valid behind the
// middleware.
func CurrentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(UserKey).(*models.User)
	return user
}
