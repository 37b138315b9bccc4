package prometheus

import (
	"time"

	"tire-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Product metrics
	ProductOperationsCounter prometheus.CounterVec

	// Brand metrics
	BrandOperationsCounter prometheus.CounterVec

	// Inventory metrics
	ProductInventoryGauge prometheus.GaugeVec

	// Product popularity metrics
	ProductViewsCounter prometheus.CounterVec

	// Variant resolution metrics
	VariantResolutionsCounter prometheus.CounterVec

	// Checkout metrics
	CartAddsCounter      prometheus.Counter
	OrderHandoffsCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Product metrics
	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	// Brand metrics
	BrandOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_brand_operations_total",
			Help: "Total number of brand operations",
		},
		[]string{"operation"},
	)

	// Product inventory metrics
	ProductInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_product_inventory",
			Help: "Current inventory level for products",
		},
		[]string{"product_id", "product_name", "brand"},
	)

	// Product popularity metrics
	ProductViewsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_views_total",
			Help: "Total number of product views",
		},
		[]string{"product_id", "brand"},
	)

	// Variant resolution metrics
	VariantResolutionsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_variant_resolutions_total",
			Help: "Total number of variant resolution attempts",
		},
		[]string{"result"},
	)

	// Checkout metrics
	CartAddsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_cart_adds_total",
			Help: "Total number of add-to-cart dispatches",
		},
	)

	OrderHandoffsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_order_handoffs_total",
			Help: "Total number of order handoffs to the outbound channel",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordBrandOperation increments the counter for brand operations
func RecordBrandOperation(operation string) {
	BrandOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateProductInventory updates the gauge for product inventory
func UpdateProductInventory(productID string, productName string, brand string, count float64) {
	ProductInventoryGauge.WithLabelValues(productID, productName, brand).Set(count)
}

// RecordProductView increments the counter for product views
func RecordProductView(productID string, brand string) {
	ProductViewsCounter.WithLabelValues(productID, brand).Inc()
}

// RecordVariantResolution increments the resolution counter with its outcome
func RecordVariantResolution(result string) {
	VariantResolutionsCounter.WithLabelValues(result).Inc()
}
