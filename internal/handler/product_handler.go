package handler

import (
	"net/http"
	"strconv"

	"tire-service/internal/model"
	"tire-service/pkg/database"
	"tire-service/pkg/logger"
	"tire-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Brand    string  `json:"brand" validate:"required"`
	Width    string  `json:"width" validate:"required"`
	Profile  string  `json:"profile" validate:"required"`
	Diameter string  `json:"diameter" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Stock    int     `json:"stock"`
	ImageURL string  `json:"image_url"`
	IsActive bool    `json:"is_active"`
}

// ListProducts handles retrieving all products for the admin console
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing products with filters")

	db := database.GetDB()
	var products []model.Product

	query := db

	// Filter by active status if specified
	isActive := c.QueryParam("is_active")
	if isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			query = query.Where("is_active = ?", active)
			log.Info("Filtering products by active status", zap.Bool("is_active", active))
		} else {
			log.Warn("Invalid is_active parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	// Filter by brand if specified
	brand := c.QueryParam("brand")
	if brand != "" {
		query = query.Where("brand = ?", brand)
		log.Info("Filtering products by brand", zap.String("brand", brand))
	}

	result := query.Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products",
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting product by ID", zap.String("product_id", id))

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	log.Info("Product retrieved successfully",
		zap.String("product_id", id),
		zap.String("product_name", product.Name),
		zap.String("brand", product.Brand))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.String("brand", req.Brand),
		zap.Float64("price", req.Price))

	// The (name, brand, width, profile, diameter) tuple identifies a variant;
	// refuse a duplicate
	var count int64
	database.GetDB().Model(&model.Product{}).
		Where("name = ? AND brand = ? AND width = ? AND profile = ? AND diameter = ?",
			req.Name, req.Brand, req.Width, req.Profile, req.Diameter).
		Count(&count)
	if count > 0 {
		log.Warn("Variant with these dimensions already exists",
			zap.String("name", req.Name),
			zap.String("brand", req.Brand))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Variant with these dimensions already exists",
		})
	}

	product := model.Product{
		Name:     req.Name,
		Brand:    req.Brand,
		Width:    req.Width,
		Profile:  req.Profile,
		Diameter: req.Diameter,
		Price:    req.Price,
		Stock:    req.Stock,
		ImageURL: req.ImageURL,
		IsActive: req.IsActive,
	}

	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.String("brand", req.Brand),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	prometheus.RecordProductOperation("create")
	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name, product.Brand, float64(product.Stock))

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("brand", product.Brand))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating product", zap.String("product_id", id))

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found for update",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	oldPrice := product.Price
	oldStock := product.Stock

	// Moving the variant onto dimensions already taken by a sibling is a conflict
	dimensionsChanged := req.Name != product.Name || req.Brand != product.Brand ||
		req.Width != product.Width || req.Profile != product.Profile || req.Diameter != product.Diameter
	if dimensionsChanged {
		var count int64
		database.GetDB().Model(&model.Product{}).
			Where("name = ? AND brand = ? AND width = ? AND profile = ? AND diameter = ? AND id != ?",
				req.Name, req.Brand, req.Width, req.Profile, req.Diameter, id).
			Count(&count)
		if count > 0 {
			log.Warn("Variant with these dimensions already exists",
				zap.String("name", req.Name),
				zap.String("brand", req.Brand))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Variant with these dimensions already exists",
			})
		}
	}

	product.Name = req.Name
	product.Brand = req.Brand
	product.Width = req.Width
	product.Profile = req.Profile
	product.Diameter = req.Diameter
	product.Price = req.Price
	product.Stock = req.Stock
	product.ImageURL = req.ImageURL
	product.IsActive = req.IsActive

	result = database.GetDB().Save(&product)
	if result.Error != nil {
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	prometheus.RecordProductOperation("update")
	prometheus.UpdateProductInventory(id, product.Name, product.Brand, float64(product.Stock))

	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", product.Name),
		zap.Float64("old_price", oldPrice),
		zap.Float64("new_price", product.Price),
		zap.Int("old_stock", oldStock),
		zap.Int("new_stock", product.Stock))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete)
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting product", zap.String("product_id", id))

	// Get product details before deleting
	var product model.Product
	preResult := database.GetDB().First(&product, id)
	if preResult.Error == nil {
		log.Info("Found product to delete",
			zap.String("product_id", id),
			zap.String("name", product.Name),
			zap.String("brand", product.Brand))
	}

	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion",
			zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	prometheus.RecordProductOperation("delete")

	log.Info("Product deleted successfully",
		zap.String("product_id", id),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}
