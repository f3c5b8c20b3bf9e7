package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/middleware"
	"github.com/Rashii1218/resinArtWebsite/models"
)

var errEmptyCart = errors.New("cart is empty")

// POST /api/orders
// Turns the caller's cart into an order: reprices the items, deducts stock
// and clears the cart inside one transaction.
func PlaceOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		order, err := placeOrder(db, user.ID)
		if err != nil {
			if err == errEmptyCart || isStockError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		BroadcastOrderEvent("order_placed", order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		orders := []models.Order{}
		if err := db.Preload("Items").
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

type stockError struct{ product string }

func (e *stockError) Error() string { return "Insufficient stock for product: " + e.product }

func isStockError(err error) bool {
	var se *stockError
	return errors.As(err, &se)
}

func placeOrder(db *gorm.DB, userID uint) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errEmptyCart
		}
		return nil, err
	}

	// Line items whose product disappeared don't count towards the order;
	// they stay behind in the cart.
	var live []models.CartItem
	for _, item := range cart.Items {
		if item.Product != nil {
			live = append(live, item)
		}
	}
	if len(live) == 0 {
		return nil, errEmptyCart
	}

	order := models.Order{
		OrderRef:      time.Now().Format("20060102150405") + "-" + uuid.NewString(),
		UserID:        userID,
		TotalAmount:   models.RepriceItems(live),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range live {
			// Conditional decrement so two concurrent checkouts cannot
			// oversell the same unit.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &stockError{product: item.Product.Name}
			}

			snapshot := models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				UnitPrice:   item.Product.Price,
				CustomText:  item.CustomText,
				Quantity:    item.Quantity,
			}
			if item.CustomText != "" && item.Product.AllowsCustomText && item.Product.CustomTextPrice > 0 {
				snapshot.CustomTextPrice = item.Product.CustomTextPrice
			}
			order.Items = append(order.Items, snapshot)
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		ordered := make([]uint, 0, len(live))
		for _, item := range live {
			ordered = append(ordered, item.ID)
		}
		return tx.Where("cart_id = ? AND id IN ?", cart.ID, ordered).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
