package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/config"
	"github.com/Rashii1218/resinArtWebsite/models"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider drives the Google sign-in redirect flow. It is constructed
// from an explicit config object; when the credentials are absent the routes
// simply aren't registered with a live provider.
type GoogleProvider struct {
	oauth          *oauth2.Config
	frontendOrigin string

	// Pending state parameters for CSRF protection.
	mu     sync.Mutex
	states map[string]time.Time
}

func NewGoogleProvider(cfg *config.GoogleOAuth, frontendOrigin string) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		frontendOrigin: frontendOrigin,
		states:         make(map[string]time.Time),
	}
}

// googleProfile is the subset of the userinfo response the storefront needs.
type googleProfile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// GET /api/auth/google
func (p *GoogleProvider) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := p.newState()
		c.Redirect(http.StatusTemporaryRedirect, p.oauth.AuthCodeURL(state))
	}
}

// GET /api/auth/google/callback
func (p *GoogleProvider) CallbackHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p.consumeState(c.Query("state")) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
			return
		}

		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
			return
		}

		profile, err := p.fetchProfile(c.Request.Context(), code)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed"})
			return
		}

		user, err := findOrCreateGoogleUser(db, profile)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in user"})
			return
		}

		token, err := IssueToken(jwtSecret, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		SetSessionCookie(c, token)

		c.Redirect(http.StatusFound, p.frontendOrigin)
	}
}

func (p *GoogleProvider) fetchProfile(ctx context.Context, code string) (*googleProfile, error) {
	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	client := p.oauth.Client(ctx, tok)
	client.Timeout = 10 * time.Second

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// findOrCreateGoogleUser resolves a Google profile to a local user record.
// The first sign-in for a given Google subject id creates the record; every
// later sign-in reuses it.
func findOrCreateGoogleUser(db *gorm.DB, profile *googleProfile) (*models.User, error) {
	var user models.User
	err := db.Where("google_id = ?", profile.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	googleID := profile.ID
	user = models.User{
		Email:     strings.ToLower(strings.TrimSpace(profile.Email)),
		FirstName: profile.GivenName,
		LastName:  lastNameFromProfile(profile),
		GoogleID:  &googleID,
		Avatar:    profile.Picture,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// lastNameFromProfile synthesizes a last name when Google omits a structured
// family name: family name, then everything after the first word of the
// display name, then a placeholder.
func lastNameFromProfile(profile *googleProfile) string {
	if profile.FamilyName != "" {
		return profile.FamilyName
	}
	parts := strings.Fields(profile.Name)
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return "GoogleUser"
}

func (p *GoogleProvider) newState() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	state := hex.EncodeToString(bytes)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[state] = time.Now().Add(10 * time.Minute)

	// Drop anything stale while we hold the lock.
	now := time.Now()
	for s, expiry := range p.states {
		if now.After(expiry) {
			delete(p.states, s)
		}
	}
	return state
}

// consumeState validates a state parameter and removes it so it cannot be
// replayed.
func (p *GoogleProvider) consumeState(state string) bool {
	if state == "" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	expiry, ok := p.states[state]
	if !ok {
		return false
	}
	delete(p.states, state)
	return time.Now().Before(expiry)
}
