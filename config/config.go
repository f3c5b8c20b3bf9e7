package config

import (
	"errors"
	"fmt"
	"os"
)

// GoogleOAuth holds the credentials for the Google sign-in redirect flow.
// It is nil on Config when the credentials are not configured; the auth
// routes then answer 503 instead of silently disappearing.
type GoogleOAuth struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// ImageHost points at the external image hosting service that stores
// product and category pictures.
type ImageHost struct {
	UploadURL string
	APIKey    string
}

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	FrontendOrigin string
	Google         *GoogleOAuth
	Images         ImageHost
}

// Load reads the full configuration from the environment. JWT_SECRET and a
// database target are mandatory; Google OAuth and the image host are optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "3000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		FrontendOrigin: getenv("FRONTEND_ORIGIN", "http://localhost:8080"),
		Images: ImageHost{
			UploadURL: os.Getenv("IMAGE_HOST_URL"),
			APIKey:    os.Getenv("IMAGE_HOST_API_KEY"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if cfg.DatabaseURL == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			return nil, errors.New("DATABASE_URL or DB_* variables must be set")
		}
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host,
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			getenv("DB_PORT", "5432"),
		)
	}

	// Google sign-in is optional: leave it unconfigured and the storefront
	// only offers password login.
	if id, secret := os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"); id != "" && secret != "" {
		cfg.Google = &GoogleOAuth{
			ClientID:     id,
			ClientSecret: secret,
			RedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:3000/api/auth/google/callback"),
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
