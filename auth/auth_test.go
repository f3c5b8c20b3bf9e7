package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rashii1218/resinArtWebsite/config"
	"github.com/Rashii1218/resinArtWebsite/models"
)

func TestIssueAndParseToken(t *testing.T) {
	user := &models.User{Email: "shopper@example.com", IsAdmin: true}
	user.ID = 42

	token, err := IssueToken("secret", user)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)

	id, ok := UserIDFromClaims(claims)
	require.True(t, ok)
	assert.Equal(t, uint(42), id)
	assert.Equal(t, "shopper@example.com", claims["email"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := &models.User{Email: "shopper@example.com"}
	user.ID = 1

	token, err := IssueToken("secret", user)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("swordfish")
	require.NoError(t, err)
	assert.NotEqual(t, "swordfish", hash)

	assert.True(t, CheckPassword("swordfish", hash))
	assert.False(t, CheckPassword("tuna", hash))
}

func TestCheckPasswordEmptyHash(t *testing.T) {
	// Google-only accounts have no password hash; nothing should match it.
	assert.False(t, CheckPassword("", ""))
	assert.False(t, CheckPassword("anything", ""))
}

func TestLastNameFromProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile googleProfile
		want    string
	}{
		{
			name:    "family name wins",
			profile: googleProfile{FamilyName: "Kumar", Name: "Amal Kumar Nair"},
			want:    "Kumar",
		},
		{
			name:    "falls back to display name remainder",
			profile: googleProfile{Name: "Amal Kumar Nair"},
			want:    "Kumar Nair",
		},
		{
			name:    "single-word display name",
			profile: googleProfile{Name: "Amal"},
			want:    "GoogleUser",
		},
		{
			name:    "empty profile",
			profile: googleProfile{},
			want:    "GoogleUser",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lastNameFromProfile(&tt.profile))
		})
	}
}

func TestGoogleLoginRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewGoogleProvider(&config.GoogleOAuth{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/api/auth/google/callback",
	}, "http://localhost:8080")

	r := gin.New()
	r.GET("/api/auth/google", p.LoginHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", location.Host)
	assert.Equal(t, "client-id", location.Query().Get("client_id"))

	// The state in the redirect is the one the callback will accept.
	state := location.Query().Get("state")
	require.NotEmpty(t, state)
	assert.True(t, p.consumeState(state))
}

func TestStateIsSingleUse(t *testing.T) {
	p := &GoogleProvider{states: make(map[string]time.Time)}

	state := p.newState()
	assert.True(t, p.consumeState(state))
	assert.False(t, p.consumeState(state), "state must not be replayable")
	assert.False(t, p.consumeState(""))
	assert.False(t, p.consumeState("never-issued"))
}
