package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tire-service/internal/cart"
	"tire-service/internal/model"
	"tire-service/pkg/database"
	"tire-service/pkg/logger"
	"tire-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// clientCartToken returns the caller's cart token, minting one when absent,
// and echoes it back on the response
func clientCartToken(c echo.Context) string {
	token := c.Request().Header.Get(cartTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}
	c.Response().Header().Set(cartTokenHeader, token)
	return token
}

// GetCart returns the client's cart, creating an empty one on first use
func GetCart(c echo.Context) error {
	log := logger.FromContext(c)
	token := clientCartToken(c)

	clientCart, err := cartService.Get(c.Request().Context(), token)
	if err != nil {
		log.Error("Failed to retrieve cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve cart",
		})
	}

	return c.JSON(http.StatusOK, clientCart)
}

// CartItemRequest adds a product to the cart directly, outside the selection flow
type CartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

// AddCartItem adds a product line to the client's cart
func AddCartItem(c echo.Context) error {
	log := logger.FromContext(c)
	token := clientCartToken(c)

	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var product model.Product
	if err := database.GetDB().First(&product, req.ProductID).Error; err != nil {
		log.Error("Product not found",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	if product.Stock <= 0 {
		log.Info("Rejected add of out-of-stock product",
			zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Product is out of stock",
		})
	}

	if err := cartService.AddItem(c.Request().Context(), token, product, req.Quantity); err != nil {
		log.Error("Failed to add cart item", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to add cart item",
		})
	}

	prometheus.CartAddsCounter.Inc()
	log.Info("Cart item added",
		zap.Uint("product_id", req.ProductID),
		zap.String("name", product.Name))

	clientCart, err := cartService.Get(c.Request().Context(), token)
	if err != nil {
		log.Error("Failed to retrieve cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve cart",
		})
	}
	return c.JSON(http.StatusOK, clientCart)
}

// RemoveCartItem drops a product line from the client's cart
func RemoveCartItem(c echo.Context) error {
	log := logger.FromContext(c)
	token := clientCartToken(c)

	productID, err := strconv.ParseUint(c.Param("productID"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid product ID",
		})
	}

	err = cartService.RemoveItem(c.Request().Context(), token, uint(productID))
	if errors.Is(err, cart.ErrItemNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Cart item not found",
		})
	}
	if err != nil {
		log.Error("Failed to remove cart item", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to remove cart item",
		})
	}

	log.Info("Cart item removed", zap.Uint64("product_id", productID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Cart item removed",
	})
}
