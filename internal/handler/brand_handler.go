package handler

import (
	"net/http"

	"tire-service/internal/model"
	"tire-service/pkg/database"
	"tire-service/pkg/logger"
	"tire-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BrandRequest defines the structure for brand creation/update requests
type BrandRequest struct {
	Name    string `json:"name" validate:"required"`
	LogoURL string `json:"logo_url"`
}

// ListBrands retrieves all brands
func ListBrands(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing brands")

	var brands []model.Brand
	result := database.GetDB().Find(&brands)
	if result.Error != nil {
		log.Error("Failed to retrieve brands", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve brands",
		})
	}

	log.Info("Brands retrieved successfully", zap.Int("count", len(brands)))
	return c.JSON(http.StatusOK, brands)
}

// GetBrand retrieves a specific brand by ID
func GetBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting brand by ID", zap.String("brand_id", id))

	var brand model.Brand
	result := database.GetDB().First(&brand, id)
	if result.Error != nil {
		log.Error("Brand not found",
			zap.String("brand_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Brand not found",
		})
	}

	return c.JSON(http.StatusOK, brand)
}

// CreateBrand creates a new brand
func CreateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new brand")

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Brand names are unique
	var count int64
	database.GetDB().Model(&model.Brand{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Brand with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Brand with this name already exists",
		})
	}

	brand := model.Brand{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	}

	result := database.GetDB().Create(&brand)
	if result.Error != nil {
		log.Error("Failed to create brand",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create brand",
		})
	}

	prometheus.RecordBrandOperation("create")

	log.Info("Brand created successfully",
		zap.Uint("brand_id", brand.ID),
		zap.String("name", brand.Name))
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand updates an existing brand
func UpdateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating brand", zap.String("brand_id", id))

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("brand_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var brand model.Brand
	result := database.GetDB().First(&brand, id)
	if result.Error != nil {
		log.Error("Brand not found for update",
			zap.String("brand_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Brand not found",
		})
	}

	if req.Name != brand.Name {
		var count int64
		database.GetDB().Model(&model.Brand{}).
			Where("name = ? AND id != ?", req.Name, id).Count(&count)
		if count > 0 {
			log.Warn("Brand with this name already exists", zap.String("name", req.Name))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Brand with this name already exists",
			})
		}
	}

	brand.Name = req.Name
	brand.LogoURL = req.LogoURL

	result = database.GetDB().Save(&brand)
	if result.Error != nil {
		log.Error("Failed to update brand",
			zap.String("brand_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update brand",
		})
	}

	prometheus.RecordBrandOperation("update")

	log.Info("Brand updated successfully",
		zap.String("brand_id", id),
		zap.String("name", brand.Name))
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand deletes a brand (soft delete)
func DeleteBrand(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting brand", zap.String("brand_id", id))

	result := database.GetDB().Delete(&model.Brand{}, id)
	if result.Error != nil {
		log.Error("Failed to delete brand",
			zap.String("brand_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete brand",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Brand not found for deletion", zap.String("brand_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Brand not found",
		})
	}

	prometheus.RecordBrandOperation("delete")

	log.Info("Brand deleted successfully", zap.String("brand_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Brand deleted successfully",
	})
}
