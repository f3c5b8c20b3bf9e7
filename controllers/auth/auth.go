package authControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/auth"
	"github.com/Rashii1218/resinArtWebsite/middleware"
	"github.com/Rashii1218/resinArtWebsite/models"
)

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func Register(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))

		// Emails are stored lowercase, so this check is case-insensitive.
		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		} else if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
			return
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
			return
		}

		user := models.User{
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		if !issueSession(c, jwtSecret, &user) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, ok := authenticate(c, db, input)
		if !ok {
			return
		}

		if !issueSession(c, jwtSecret, user) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// POST /api/auth/admin/login
func AdminLogin(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		// The admin flag is checked before the password, matching the
		// storefront's behaviour.
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin only."})
			return
		}

		if !auth.CheckPassword(input.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if !issueSession(c, jwtSecret, &user) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// GET /api/auth/me
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.CurrentUser(c))
	}
}

// GET /api/auth/user/:id
func GetUserByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, ok := selfOrAdminTarget(c)
		if !ok {
			return
		}

		var user models.User
		if err := db.First(&user, targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type UpdatePhoneInput struct {
	PhoneNumber string `json:"phone_number"`
}

// PATCH /api/auth/user/:id
func UpdatePhoneNumber(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, ok := selfOrAdminTarget(c)
		if !ok {
			return
		}

		var input UpdatePhoneInput
		if err := c.ShouldBindJSON(&input); err != nil || input.PhoneNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
			return
		}

		var user models.User
		if err := db.First(&user, targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := db.Model(&user).Update("phone_number", input.PhoneNumber).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update phone number"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func authenticate(c *gin.Context, db *gorm.DB, input LoginInput) (*models.User, bool) {
	var user models.User
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return nil, false
	}
	if !auth.CheckPassword(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return nil, false
	}
	return &user, true
}

func issueSession(c *gin.Context, jwtSecret string, user *models.User) bool {
	token, err := auth.IssueToken(jwtSecret, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return false
	}
	auth.SetSessionCookie(c, token)
	return true
}

// selfOrAdminTarget parses :id and enforces that the caller is either the
// target user or an admin.
func selfOrAdminTarget(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	caller := middleware.CurrentUser(c)
	if caller.ID != uint(id64) && !caller.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return 0, false
	}
	return uint(id64), true
}
