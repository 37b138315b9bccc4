package handler

import (
	"net/http"
	"strconv"

	"tire-service/internal/model"
	"tire-service/internal/variant"
	"tire-service/pkg/database"
	"tire-service/pkg/logger"
	"tire-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListCatalog retrieves the storefront catalog: active products only, with
// optional dimension and brand filters
func ListCatalog(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Where("is_active = ?", true)
	for param, column := range map[string]string{
		"brand":    "brand",
		"width":    "width",
		"profile":  "profile",
		"diameter": "diameter",
	} {
		if v := c.QueryParam(param); v != "" {
			query = query.Where(column+" = ?", v)
		}
	}

	var products []model.Product
	result := query.Find(&products)
	if result.Error != nil {
		log.Error("Failed to list catalog", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve catalog",
		})
	}

	log.Info("Catalog retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// loadVariantGroup loads a product and the active members of its variant group
func loadVariantGroup(id string) (*model.Product, []model.Product, error) {
	var base model.Product
	if err := database.GetDB().First(&base, id).Error; err != nil {
		return nil, nil, err
	}

	var catalog []model.Product
	err := database.GetDB().
		Where("name = ? AND brand = ? AND is_active = ?", base.Name, base.Brand, true).
		Find(&catalog).Error
	if err != nil {
		return nil, nil, err
	}

	return &base, variant.VariantsOf(catalog, base), nil
}

// GetProductVariants returns the variant group of a product together with its
// selectable dimension value sets
func GetProductVariants(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting variant group", zap.String("product_id", id))

	base, group, err := loadVariantGroup(id)
	if err != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	prometheus.RecordProductView(strconv.FormatUint(uint64(base.ID), 10), base.Brand)

	return c.JSON(http.StatusOK, echo.Map{
		"product":   base,
		"variants":  group,
		"widths":    variant.DistinctSorted(group, variant.DimensionWidth),
		"profiles":  variant.DistinctSorted(group, variant.DimensionProfile),
		"diameters": variant.DistinctSorted(group, variant.DimensionDiameter),
	})
}

// ResolveVariant resolves a dimension triple against a product's variant
// group. A combination with no matching variant is a plain not-found, never
// an error: the storefront renders it as disabled actions and "N/A" pricing.
func ResolveVariant(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	width := c.QueryParam("width")
	profile := c.QueryParam("profile")
	diameter := c.QueryParam("diameter")
	log.Info("Resolving variant",
		zap.String("product_id", id),
		zap.String("width", width),
		zap.String("profile", profile),
		zap.String("diameter", diameter))

	_, group, err := loadVariantGroup(id)
	if err != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	resolved := variant.Resolve(group, width, profile, diameter)
	if resolved == nil {
		prometheus.RecordVariantResolution("no_match")
		log.Info("No variant matches selection", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "No variant matches the selected dimensions",
		})
	}

	prometheus.RecordVariantResolution("matched")
	return c.JSON(http.StatusOK, echo.Map{
		"variant": resolved,
		"stock":   variant.Classify(resolved.Stock),
	})
}
