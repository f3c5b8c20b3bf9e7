package authControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/auth"
	"github.com/Rashii1218/resinArtWebsite/middleware"
	"github.com/Rashii1218/resinArtWebsite/models"
)

const testSecret = "test-secret"

func setupAuthTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	group := r.Group("/api/auth")
	{
		group.POST("/register", Register(db, testSecret))
		group.POST("/login", Login(db, testSecret))
		group.POST("/admin/login", AdminLogin(db, testSecret))

		protected := group.Group("")
		protected.Use(middleware.RequireAuth(db, testSecret))
		{
			protected.GET("/me", Me())
			protected.GET("/user/:id", GetUserByID(db))
			protected.PATCH("/user/:id", UpdatePhoneNumber(db))
		}
	}
	return db, r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, isAdmin bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Seed",
		LastName:     "User",
		IsAdmin:      isAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func sessionCookieFor(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := auth.IssueToken(testSecret, user)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func findSessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestRegisterIssuesSession(t *testing.T) {
	db, r := setupAuthTest(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"email":      "Amal@Example.com",
		"password":   "s3cret-pass",
		"first_name": "Amal",
		"last_name":  "K",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	cookie := findSessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// Email is normalized to lowercase and the hash never leaves the API.
	var stored models.User
	require.NoError(t, db.Where("email = ?", "amal@example.com").First(&stored).Error)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotContains(t, w.Body.String(), stored.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	db, r := setupAuthTest(t)
	seedUser(t, db, "amal@example.com", "whatever", false)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"email":      "AMAL@example.com",
		"password":   "another",
		"first_name": "Amal",
		"last_name":  "K",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	_, r := setupAuthTest(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"email":    "not-an-email",
		"password": "pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	db, r := setupAuthTest(t)
	seedUser(t, db, "shopper@example.com", "correct-horse", false)

	w := postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "Shopper@Example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, findSessionCookie(w))
}

func TestLoginWrongPassword(t *testing.T) {
	db, r := setupAuthTest(t)
	seedUser(t, db, "shopper@example.com", "correct-horse", false)

	w := postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "shopper@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, r := setupAuthTest(t)

	w := postJSON(t, r, "/api/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "anything",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginRejectsNonAdminBeforePassword(t *testing.T) {
	db, r := setupAuthTest(t)
	seedUser(t, db, "shopper@example.com", "correct-horse", false)

	// Even with the right password, a non-admin gets 403 from the admin door.
	w := postJSON(t, r, "/api/auth/admin/login", gin.H{
		"email":    "shopper@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminLogin(t *testing.T) {
	db, r := setupAuthTest(t)
	seedUser(t, db, "boss@example.com", "admin-pass", true)

	w := postJSON(t, r, "/api/auth/admin/login", gin.H{
		"email":    "boss@example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, findSessionCookie(w))

	w = postJSON(t, r, "/api/auth/admin/login", gin.H{
		"email":    "boss@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresSession(t *testing.T) {
	_, r := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	db, r := setupAuthTest(t)
	user := seedUser(t, db, "shopper@example.com", "correct-horse", false)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(sessionCookieFor(t, user))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "shopper@example.com", got.Email)
}

func TestGetUserByIDSelfOrAdminOnly(t *testing.T) {
	db, r := setupAuthTest(t)
	alice := seedUser(t, db, "alice@example.com", "pass-a", false)
	bob := seedUser(t, db, "bob@example.com", "pass-b", false)
	admin := seedUser(t, db, "boss@example.com", "pass-c", true)

	fetch := func(cookie *http.Cookie, targetID uint) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/auth/user/%d", targetID), nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, fetch(sessionCookieFor(t, alice), alice.ID).Code)
	assert.Equal(t, http.StatusForbidden, fetch(sessionCookieFor(t, alice), bob.ID).Code)
	assert.Equal(t, http.StatusOK, fetch(sessionCookieFor(t, admin), bob.ID).Code)
}

func TestUpdatePhoneNumber(t *testing.T) {
	db, r := setupAuthTest(t)
	user := seedUser(t, db, "shopper@example.com", "correct-horse", false)

	patch := func(body any) *httptest.ResponseRecorder {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/auth/user/%d", user.ID), bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(sessionCookieFor(t, user))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := patch(gin.H{"phone_number": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = patch(gin.H{"phone_number": "+971501234567"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "+971501234567", stored.PhoneNumber)
}
