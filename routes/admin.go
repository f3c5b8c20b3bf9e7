package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/config"
	adminControllers "github.com/Rashii1218/resinArtWebsite/controllers/admin"
	orderControllers "github.com/Rashii1218/resinArtWebsite/controllers/order"
	"github.com/Rashii1218/resinArtWebsite/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Every route
// requires an admin session.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(db, cfg.JWTSecret))
	{
		admin.GET("/customers", adminControllers.GetAllCustomers(db))
		admin.GET("/customers/:customerId", adminControllers.GetCustomerDetails(db))

		admin.GET("/orders", adminControllers.GetAllOrders(db))
		admin.GET("/orders/ws", orderControllers.OrderFeedHandler)
		admin.GET("/orders/:id", adminControllers.GetOrderDetails(db))
		admin.PUT("/orders/:id/status", adminControllers.UpdateOrderStatus(db))
		admin.PUT("/orders/:id/tracking", adminControllers.UpdateTrackingNumber(db))
		admin.PATCH("/orders/:id/notes", adminControllers.UpdateOrderNotes(db))

		admin.GET("/products/export", adminControllers.ExportProducts(db))
	}
}
