package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to verify tokens issued by the user service
var JWTSecret = []byte(getEnv("JWT_SECRET", "food_storefront_super_secret_2024"))

// Base URLs of the external collaborators
var (
	CartServiceURL       = getEnv("CART_SERVICE_URL", "http://localhost:8081")
	OrderServiceURL      = getEnv("ORDER_SERVICE_URL", "http://localhost:8082")
	RestaurantServiceURL = getEnv("RESTAURANT_SERVICE_URL", "http://localhost:8083")
)

// RedisAddr, when set, switches the durable cart cache to redis.
var RedisAddr = os.Getenv("REDIS_ADDR")

// NATSURL, when set, enables order event publishing.
var NATSURL = os.Getenv("NATS_URL")

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the local sqlite database backing the durable cart cache.
func InitDB() {
	var err error
	path := getEnv("STOREFRONT_DB", "storefront.db")
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to open local cache database:", err)
	}
}
