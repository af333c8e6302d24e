package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lavka/pkg/logger"
	"lavka/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
// Чтение открыто, мутации требуют аутентификации
// DELETE объявлен для каждого ресурса, но возвращает 501
func SetupRoutes(
	catalogHandler *CatalogHandler,
	geoHandler *GeoHandler,
	customerHandler *CustomerHandler,
	orderHandler *OrderHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("shop-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "shop-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	auth := authMiddleware.Authenticate()

	categories := api.Group("/categories")
	{
		categories.GET("", catalogHandler.FindCategories)
		categories.GET("/all", catalogHandler.GetAllCategories)
		categories.GET("/parents", catalogHandler.FindParentCategories)
		categories.GET("/:id", catalogHandler.GetCategory)
		categories.GET("/:id/subcategories", catalogHandler.FindSubcategories)
		categories.POST("", auth, catalogHandler.CreateCategory)
		categories.PUT("/:id", auth, catalogHandler.UpdateCategory)
		categories.DELETE("/:id", auth, notImplemented)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", catalogHandler.FindTags)
		tags.GET("/:id", catalogHandler.GetTag)
		tags.POST("", auth, catalogHandler.CreateTag)
		tags.PUT("/:id", auth, catalogHandler.UpdateTag)
		tags.DELETE("/:id", auth, notImplemented)
	}

	discounts := api.Group("/discounts")
	{
		discounts.GET("", catalogHandler.FindDiscounts)
		discounts.GET("/:id", catalogHandler.GetDiscount)
		discounts.POST("", auth, catalogHandler.CreateDiscount)
		discounts.PUT("/:id", auth, catalogHandler.UpdateDiscount)
		discounts.DELETE("/:id", auth, notImplemented)
	}

	products := api.Group("/products")
	{
		products.GET("", catalogHandler.FindProducts)
		products.GET("/:id", catalogHandler.GetProduct)
		products.GET("/category/:id", catalogHandler.FindProductsByCategory)
		products.GET("/store/:id", catalogHandler.FindProductsByStore)
		products.POST("", auth, catalogHandler.CreateProduct)
		products.PUT("/:id", auth, catalogHandler.UpdateProduct)
		products.DELETE("/:id", auth, notImplemented)
	}

	countries := api.Group("/countries")
	{
		countries.GET("", geoHandler.FindCountries)
		countries.GET("/:id", geoHandler.GetCountry)
		countries.POST("", auth, geoHandler.CreateCountry)
		countries.PUT("/:id", auth, geoHandler.UpdateCountry)
		countries.DELETE("/:id", auth, notImplemented)
	}

	cities := api.Group("/cities")
	{
		cities.GET("", geoHandler.FindCities)
		cities.GET("/:id", geoHandler.GetCity)
		cities.GET("/country/:id", geoHandler.FindCitiesByCountry)
		cities.POST("/location", geoHandler.FindCitiesByLocation)
		cities.POST("", auth, geoHandler.CreateCity)
		cities.PUT("/:id", auth, geoHandler.UpdateCity)
		cities.DELETE("/:id", auth, notImplemented)
	}

	stores := api.Group("/stores")
	{
		stores.GET("", geoHandler.FindStores)
		stores.GET("/:id", geoHandler.GetStore)
		stores.GET("/city/:id", geoHandler.FindStoresByCity)
		stores.POST("/location", geoHandler.FindStoresByLocation)
		stores.POST("", auth, geoHandler.CreateStore)
		stores.PUT("/:id", auth, geoHandler.UpdateStore)
		stores.DELETE("/:id", auth, notImplemented)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", customerHandler.FindCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.GET("/store/:id", customerHandler.FindCustomersByStore)
		customers.POST("", auth, customerHandler.CreateCustomer)
		customers.PUT("/:id", auth, customerHandler.UpdateCustomer)
		customers.DELETE("/:id", auth, notImplemented)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", orderHandler.FindOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/customer/:id", orderHandler.FindOrdersByCustomer)
		orders.POST("", auth, orderHandler.CreateOrder)
		orders.PUT("/:id", auth, orderHandler.UpdateOrder)
		orders.DELETE("/:id", auth, notImplemented)
	}

	payments := api.Group("/payments")
	{
		payments.GET("", orderHandler.FindPayments)
		payments.GET("/:id", orderHandler.GetPayment)
		payments.GET("/order/:id", orderHandler.FindPaymentsByOrder)
		payments.POST("", auth, orderHandler.CreatePayment)
		payments.PUT("/:id", auth, orderHandler.UpdatePayment)
		payments.DELETE("/:id", auth, notImplemented)
	}

	shipments := api.Group("/shipments")
	{
		shipments.GET("", orderHandler.FindShipments)
		shipments.GET("/:id", orderHandler.GetShipment)
		shipments.GET("/order/:id", orderHandler.FindShipmentsByOrder)
		shipments.POST("", auth, orderHandler.CreateShipment)
		shipments.PUT("/:id", auth, orderHandler.UpdateShipment)
		shipments.DELETE("/:id", auth, notImplemented)
	}

	paymentMethods := api.Group("/payment-methods")
	{
		paymentMethods.GET("", orderHandler.FindPaymentMethods)
		paymentMethods.GET("/:id", orderHandler.GetPaymentMethod)
		paymentMethods.POST("", auth, orderHandler.CreatePaymentMethod)
		paymentMethods.PUT("/:id", auth, orderHandler.UpdatePaymentMethod)
		paymentMethods.DELETE("/:id", auth, notImplemented)
	}

	shipmentMethods := api.Group("/shipment-methods")
	{
		shipmentMethods.GET("", orderHandler.FindShipmentMethods)
		shipmentMethods.GET("/:id", orderHandler.GetShipmentMethod)
		shipmentMethods.POST("", auth, orderHandler.CreateShipmentMethod)
		shipmentMethods.PUT("/:id", auth, orderHandler.UpdateShipmentMethod)
		shipmentMethods.DELETE("/:id", auth, notImplemented)
	}

	return router
}
