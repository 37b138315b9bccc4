package main

import (
	"net/http"

	"tire-service/internal/cart"
	"tire-service/internal/handler"
	mid "tire-service/internal/middleware"
	"tire-service/pkg/config"
	"tire-service/pkg/database"
	"tire-service/pkg/jwtutil"
	"tire-service/pkg/logger"
	"tire-service/pkg/whatsapp"
	"tire-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting tire-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the checkout collaborators
	carts := cart.NewService(database.GetDB())
	orders := whatsapp.NewClient(&appConfig.WhatsApp, log)
	sessions := handler.NewSessionStore(appConfig.Selection.ConfirmTTL, appConfig.Selection.IdleTTL)
	defer sessions.Stop()

	handler.InitSelection(sessions, carts, orders)
	handler.InitAdminAuth(&appConfig.Admin)
	log.Info("Checkout collaborators wired",
		zap.String("whatsapp_phone", appConfig.WhatsApp.PhoneNumber),
		zap.Duration("confirm_ttl", appConfig.Selection.ConfirmTTL))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public storefront routes
	e.GET("/api/catalog", handler.ListCatalog)
	e.GET("/api/catalog/:id/variants", handler.GetProductVariants)
	e.GET("/api/catalog/:id/resolve", handler.ResolveVariant)

	// Selection session routes (the product modal, server side)
	selectionAPI := e.Group("/api/selection")
	selectionAPI.POST("/open", handler.OpenSelection)
	selectionAPI.GET("", handler.GetSelection)
	selectionAPI.PUT("/dimension", handler.EditSelectionDimension)
	selectionAPI.POST("/cart", handler.AddSelectionToCart)
	selectionAPI.POST("/order", handler.OrderSelectionNow)
	selectionAPI.DELETE("", handler.CloseSelection)

	// Cart routes
	cartAPI := e.Group("/api/cart")
	cartAPI.GET("", handler.GetCart)
	cartAPI.POST("/items", handler.AddCartItem)
	cartAPI.DELETE("/items/:productID", handler.RemoveCartItem)

	// Admin console routes - login is open, the rest require an admin JWT
	e.POST("/api/admin/login", handler.AdminLogin)

	adminProductAPI := e.Group("/api/admin/products", mid.AuthMiddleware)
	adminProductAPI.GET("", handler.ListProducts)
	adminProductAPI.GET("/:id", handler.GetProduct)
	adminProductAPI.POST("", handler.CreateProduct)
	adminProductAPI.PUT("/:id", handler.UpdateProduct)
	adminProductAPI.DELETE("/:id", handler.DeleteProduct)

	adminBrandAPI := e.Group("/api/admin/brands", mid.AuthMiddleware)
	adminBrandAPI.GET("", handler.ListBrands)
	adminBrandAPI.GET("/:id", handler.GetBrand)
	adminBrandAPI.POST("", handler.CreateBrand)
	adminBrandAPI.PUT("/:id", handler.UpdateBrand)
	adminBrandAPI.DELETE("/:id", handler.DeleteBrand)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
