package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"food-storefront/cache"
	"food-storefront/clients"
	"food-storefront/config"
	"food-storefront/events"
	"food-storefront/handlers"
	"food-storefront/middleware"
	"food-storefront/routes"
	"food-storefront/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Structured JSON logs for everything beyond gin's access log
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize the local cache database
	config.InitDB()

	// Durable cart cache: redis when configured, sqlite otherwise
	var cartCache cache.CartCache
	if config.RedisAddr != "" {
		cartCache = cache.NewRedisCache(config.RedisAddr)
		logger.Info("using redis cart cache", "addr", config.RedisAddr)
	} else {
		sqliteCache, err := cache.NewSQLiteCache(config.DB)
		if err != nil {
			log.Fatal("Failed to migrate cart cache:", err)
		}
		cartCache = sqliteCache
	}

	// External collaborators
	cartClient := clients.NewHTTPCartClient(config.CartServiceURL)
	orderClient := clients.NewHTTPOrderClient(config.OrderServiceURL)
	restaurantClient := clients.NewHTTPRestaurantClient(config.RestaurantServiceURL)

	// Order events are optional; without a broker they are dropped
	var publisher events.Publisher = events.NoopPublisher{}
	if config.NATSURL != "" {
		natsPub, err := events.NewNATSPublisher(config.NATSURL)
		if err != nil {
			logger.Warn("NATS unavailable, order events disabled", "error", err)
		} else {
			defer natsPub.Close()
			publisher = natsPub
		}
	}

	// Core services
	cartStore := services.NewCartStore(cartCache, cartClient, logger)
	coordinator := services.NewCheckoutCoordinator(cartStore, orderClient, publisher, logger)
	tracker := services.NewOrderTracker(orderClient, restaurantClient, logger)
	mutator := services.NewAdminStatusMutator(tracker, orderClient, publisher, logger)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.RequestID())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Storefront",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, routes.Handlers{
		Cart:     handlers.NewCartHandler(cartStore),
		Checkout: handlers.NewCheckoutHandler(coordinator),
		Orders:   handlers.NewOrderHandler(tracker, mutator),
		Admin:    handlers.NewAdminHandler(tracker, mutator),
		Public:   handlers.NewPublicHandler(restaurantClient),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Storefront running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
