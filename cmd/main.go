package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lavka/internal/app/shop/config"
	"lavka/internal/app/shop/handler"
	"lavka/internal/app/shop/processor"
	"lavka/internal/app/shop/repository"
	"lavka/internal/app/shop/service"
	"lavka/internal/app/shop/util"
	"lavka/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("shop-service", cfg.Log.Level)

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	productsProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.ProductsTopic)
	defer productsProducer.Close()
	ordersProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
	defer ordersProducer.Close()
	logger.Info().
		Str("products_topic", cfg.Kafka.ProductsTopic).
		Str("orders_topic", cfg.Kafka.OrdersTopic).
		Msg("Initialized Kafka producers")

	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	productRepo := repository.NewProductRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	cityRepo := repository.NewCityRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	shipmentMethodRepo := repository.NewShipmentMethodRepository(db)

	catalogService := service.NewCatalogService(categoryRepo, tagRepo, discountRepo, productRepo, storeRepo, redisClient, productsProducer)
	geoService := service.NewGeoService(countryRepo, cityRepo, storeRepo)
	customerService := service.NewCustomerService(customerRepo, storeRepo)
	orderService, err := service.NewOrderService(
		orderRepo, paymentRepo, shipmentRepo,
		paymentMethodRepo, shipmentMethodRepo,
		customerRepo, productRepo, ordersProducer,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create order service")
	}

	cleanupService := service.NewCleanupService(
		cfg.Cleanup.Retention,
		categoryRepo, countryRepo, cityRepo, storeRepo,
		productRepo, tagRepo, discountRepo, customerRepo,
		orderRepo, paymentRepo, shipmentRepo,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := processor.NewCronScheduler(cleanupService)
	if err := scheduler.Start(ctx, cfg.Cleanup.Schedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cleanup scheduler")
	}
	defer scheduler.Stop()

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	geoHandler := handler.NewGeoHandler(geoService)
	customerHandler := handler.NewCustomerHandler(customerService)
	orderHandler := handler.NewOrderHandler(orderService)

	router := handler.SetupRoutes(catalogHandler, geoHandler, customerHandler, orderHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Shop Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Shop Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Shop Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err = mongo.Connect(ctx, clientOptions)
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pingCancel()

			if err = client.Ping(pingCtx, nil); err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
