package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tire-service/internal/cart"
	"tire-service/internal/variant"
	"tire-service/pkg/logger"
	"tire-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Selection session dependencies, wired at startup
var (
	sessionStore *SessionStore
	cartService  *cart.Service
	orderChannel variant.OrderInitiator
)

// InitSelection wires the selection endpoints to their collaborators
func InitSelection(store *SessionStore, carts *cart.Service, orders variant.OrderInitiator) {
	sessionStore = store
	cartService = carts
	orderChannel = orders
}

const (
	selectionTokenHeader = "X-Selection-Token"
	cartTokenHeader      = "X-Cart-Token"
)

// OpenSelectionRequest names the product the client clicked
type OpenSelectionRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

// EditDimensionRequest changes one facet of the current selection
type EditDimensionRequest struct {
	Dimension string `json:"dimension" validate:"required"`
	Value     string `json:"value" validate:"required"`
}

// OpenSelection opens (or reopens) the client's selection session on a
// product. Reopening fully replaces any prior selection.
func OpenSelection(c echo.Context) error {
	log := logger.FromContext(c)

	var req OpenSelectionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	id := strconv.FormatUint(uint64(req.ProductID), 10)
	base, group, err := loadVariantGroup(id)
	if err != nil {
		log.Error("Product not found for selection",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	token := c.Request().Header.Get(selectionTokenHeader)
	session, ok := sessionStore.Get(token)
	if !ok {
		token, session = sessionStore.Create()
	}

	session.Open(*base, group)
	prometheus.RecordProductView(id, base.Brand)

	log.Info("Selection opened",
		zap.String("product_id", id),
		zap.String("name", base.Name),
		zap.String("brand", base.Brand))

	c.Response().Header().Set(selectionTokenHeader, token)
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"state": session.State(),
	})
}

// GetSelection returns the current session state for rendering
func GetSelection(c echo.Context) error {
	session, ok := sessionStore.Get(c.Request().Header.Get(selectionTokenHeader))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "No selection session",
		})
	}
	return c.JSON(http.StatusOK, session.State())
}

// EditSelectionDimension replaces one dimension of the open selection and
// returns the re-derived state
func EditSelectionDimension(c echo.Context) error {
	log := logger.FromContext(c)

	session, ok := sessionStore.Get(c.Request().Header.Get(selectionTokenHeader))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "No selection session",
		})
	}

	var req EditDimensionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	err := session.EditDimension(variant.Dimension(req.Dimension), req.Value)
	if errors.Is(err, variant.ErrUnknownDimension) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unknown dimension",
		})
	}
	if errors.Is(err, variant.ErrClosed) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Selection session is closed",
		})
	}

	state := session.State()
	if state.Resolved != nil {
		prometheus.RecordVariantResolution("matched")
	} else {
		prometheus.RecordVariantResolution("no_match")
	}

	log.Info("Selection dimension edited",
		zap.String("dimension", req.Dimension),
		zap.String("value", req.Value),
		zap.Bool("resolved", state.Resolved != nil))
	return c.JSON(http.StatusOK, state)
}

// AddSelectionToCart dispatches the resolved variant to the client's cart.
// Without an in-stock resolved variant the dispatch is refused, mirroring the
// storefront's disabled button.
func AddSelectionToCart(c echo.Context) error {
	log := logger.FromContext(c)

	session, ok := sessionStore.Get(c.Request().Header.Get(selectionTokenHeader))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "No selection session",
		})
	}

	cartToken := c.Request().Header.Get(cartTokenHeader)
	if cartToken == "" {
		cartToken = uuid.NewString()
	}

	dispatcher := &variant.Dispatcher{
		Cart:   cartService.ForClient(cartToken),
		Orders: orderChannel,
	}

	err := dispatcher.AddToCart(c.Request().Context(), session)
	if errors.Is(err, variant.ErrNotOrderable) {
		log.Info("Add to cart refused: no in-stock variant selected")
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "No in-stock variant selected",
		})
	}
	if err != nil {
		log.Error("Failed to add to cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to add to cart",
		})
	}

	prometheus.CartAddsCounter.Inc()
	log.Info("Variant added to cart", zap.String("cart_token", cartToken))

	c.Response().Header().Set(cartTokenHeader, cartToken)
	return c.JSON(http.StatusOK, echo.Map{
		"cart_token": cartToken,
		"state":      session.State(),
	})
}

// OrderSelectionNow hands the resolved variant straight off to the outbound
// order channel and closes the session
func OrderSelectionNow(c echo.Context) error {
	log := logger.FromContext(c)

	session, ok := sessionStore.Get(c.Request().Header.Get(selectionTokenHeader))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "No selection session",
		})
	}

	dispatcher := &variant.Dispatcher{Orders: orderChannel}

	link, err := dispatcher.OrderNow(c.Request().Context(), session)
	if errors.Is(err, variant.ErrNotOrderable) {
		log.Info("Order refused: no in-stock variant selected")
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "No in-stock variant selected",
		})
	}
	if err != nil {
		log.Error("Order handoff failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Order handoff failed",
		})
	}

	prometheus.OrderHandoffsCounter.Inc()
	log.Info("Order handed off")
	return c.JSON(http.StatusOK, echo.Map{
		"link": link,
	})
}

// CloseSelection closes and discards the client's selection session
func CloseSelection(c echo.Context) error {
	sessionStore.Delete(c.Request().Header.Get(selectionTokenHeader))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Selection closed",
	})
}
