package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `json:"-"` // empty for Google-only accounts
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	GoogleID     *string   `gorm:"uniqueIndex" json:"-"` // nullable so local accounts don't collide
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
