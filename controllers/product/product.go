package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rashii1218/resinArtWebsite/models"
)

type ImageInput struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type CreateProductInput struct {
	Name                string       `json:"name" binding:"required"`
	Description         string       `json:"description" binding:"required"`
	Price               float64      `json:"price" binding:"required"`
	CategoryID          uint         `json:"category_id" binding:"required"`
	Stock               int          `json:"stock" binding:"required"`
	Images              []ImageInput `json:"images"`
	IsFeatured          bool         `json:"is_featured"`
	AllowsCustomText    bool         `json:"allows_custom_text"`
	CustomTextLabel     string       `json:"custom_text_label"`
	CustomTextMaxLength int          `json:"custom_text_max_length"`
	CustomTextPrice     float64      `json:"custom_text_price"`
}

// POST /api/products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		product := models.Product{
			Name:                input.Name,
			Description:         input.Description,
			Price:               input.Price,
			CategoryID:          input.CategoryID,
			Stock:               input.Stock,
			Images:              filterImages(input.Images),
			IsFeatured:          input.IsFeatured,
			AllowsCustomText:    input.AllowsCustomText,
			CustomTextLabel:     input.CustomTextLabel,
			CustomTextMaxLength: input.CustomTextMaxLength,
			CustomTextPrice:     input.CustomTextPrice,
		}
		if product.CustomTextLabel == "" {
			product.CustomTextLabel = "Custom Text"
		}
		if product.CustomTextMaxLength == 0 {
			product.CustomTextMaxLength = 50
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// GET /api/products (public)
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := []models.Product{}
		if err := db.Preload("Images").Preload("Category").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/featured?limit=&sort= (public)
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 6
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			limit = n
		}

		products := []models.Product{}
		if err := db.Preload("Images").Preload("Category").
			Where("is_featured = ?", true).
			Order(sortClause(c.DefaultQuery("sort", "-created_at"))).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id (public)
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Preload("Images").Preload("Category").First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type UpdateProductInput struct {
	Name                *string      `json:"name"`
	Description         *string      `json:"description"`
	Price               *float64     `json:"price"`
	CategoryID          *uint        `json:"category_id"`
	Stock               *int         `json:"stock"`
	Images              []ImageInput `json:"images"`
	IsFeatured          *bool        `json:"is_featured"`
	AllowsCustomText    *bool        `json:"allows_custom_text"`
	CustomTextLabel     *string      `json:"custom_text_label"`
	CustomTextMaxLength *int         `json:"custom_text_max_length"`
	CustomTextPrice     *float64     `json:"custom_text_price"`
}

// PATCH /api/products/:id (admin)
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Preload("Images").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = *input.CategoryID
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.IsFeatured != nil {
			product.IsFeatured = *input.IsFeatured
		}
		if input.AllowsCustomText != nil {
			product.AllowsCustomText = *input.AllowsCustomText
		}
		if input.CustomTextLabel != nil {
			product.CustomTextLabel = *input.CustomTextLabel
		}
		if input.CustomTextMaxLength != nil {
			product.CustomTextMaxLength = *input.CustomTextMaxLength
		}
		if input.CustomTextPrice != nil {
			product.CustomTextPrice = *input.CustomTextPrice
		}

		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		// Image list is replaced wholesale when provided.
		if input.Images != nil {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update images"})
				return
			}
			product.Images = filterImages(input.Images)
		}

		if err := tx.Save(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/products/:id (admin)
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		// Soft delete: cart line items referencing the product survive, but
		// repricing stops counting them.
		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// filterImages keeps only entries carrying both a URL and a host public id.
func filterImages(inputs []ImageInput) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(inputs))
	for _, img := range inputs {
		if img.URL == "" || img.PublicID == "" {
			continue
		}
		images = append(images, models.ProductImage{URL: img.URL, PublicID: img.PublicID})
	}
	return images
}

// sortClause maps an API sort parameter ("-created_at", "price") onto a safe
// ORDER BY clause.
func sortClause(param string) string {
	direction := "asc"
	column := param
	if strings.HasPrefix(param, "-") {
		direction = "desc"
		column = param[1:]
	}
	switch column {
	case "price", "name", "created_at":
	default:
		column = "created_at"
		direction = "desc"
	}
	return column + " " + direction
}

func idParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id64), true
}
