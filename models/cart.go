package models

import (
	"math"
	"time"
)

type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64    `gorm:"-" json:"total"` // derived, never read from the DB
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID     uint      `gorm:"index;uniqueIndex:idx_cart_product" json:"-"`
	ProductID  uint      `gorm:"uniqueIndex:idx_cart_product" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CustomText string    `json:"custom_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Reprice recomputes the cart total from the preloaded products and stamps
// it on the cart. It is the single pricing path: every handler that reads or
// writes a cart calls it before responding.
func (c *Cart) Reprice() {
	c.Total = RepriceItems(c.Items)
}

// RepriceItems returns the total for a set of line items at current product
// prices, rounded to two decimals. Items whose product can no longer be
// resolved (deleted product, Product pointer nil) are excluded from the
// total but intentionally left in the item list.
func RepriceItems(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total += item.Product.Price * float64(item.Quantity)
		if item.CustomText != "" && item.Product.AllowsCustomText && item.Product.CustomTextPrice > 0 {
			total += item.Product.CustomTextPrice * float64(item.Quantity)
		}
	}
	return math.Round(total*100) / 100
}
