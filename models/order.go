package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmed by the shop
	OrderStatusShipped   OrderStatus = "shipped"   // handed to the carrier
	OrderStatusDelivered OrderStatus = "delivered" // received by the customer
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled before shipping

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef       string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID         uint          `gorm:"not null;index" json:"user_id"`
	User           *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount    float64       `json:"total_amount"`
	Status         OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	TrackingNumber string        `json:"tracking_number"`
	Notes          string        `json:"notes"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// OrderItem snapshots the product at purchase time: later price or catalog
// changes must not rewrite past orders.
type OrderItem struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         uint    `gorm:"index" json:"-"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	UnitPrice       float64 `json:"unit_price"`
	CustomText      string  `json:"custom_text"`
	CustomTextPrice float64 `json:"custom_text_price"`
	Quantity        int     `json:"quantity"`
}
