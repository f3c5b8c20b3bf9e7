package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Stock       int            `json:"stock"`
	CategoryID  uint           `json:"category_id"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	IsFeatured  bool           `gorm:"default:false" json:"is_featured"`

	// Per-item personalization: customers may attach a short text (engraving,
	// gift message) for an extra per-unit charge.
	AllowsCustomText    bool    `gorm:"default:false" json:"allows_custom_text"`
	CustomTextLabel     string  `gorm:"default:'Custom Text'" json:"custom_text_label"`
	CustomTextMaxLength int     `gorm:"default:50" json:"custom_text_max_length"`
	CustomTextPrice     float64 `gorm:"default:0" json:"custom_text_price"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductImage points at an externally hosted picture.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID uint   `gorm:"index" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	PublicID  string `gorm:"not null" json:"public_id"`
}
