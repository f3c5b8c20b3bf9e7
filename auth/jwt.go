package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Rashii1218/resinArtWebsite/models"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

// Sessions live for a week; logout is the client discarding the cookie.
const tokenTTL = 7 * 24 * time.Hour

// IssueToken signs a session token for a user.
func IssueToken(secret string, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// UserIDFromClaims reads the user id out of parsed claims. JSON numbers
// arrive as float64.
func UserIDFromClaims(claims jwt.MapClaims) (uint, bool) {
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}

// SetSessionCookie attaches the token as an http-only cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, int(tokenTTL.Seconds()), "/", "", false, true)
}
