package main

import (
	"log"

	"github.com/joho/godotenv"

	"ghorerbazar.top/organic/storefront/internal/router"
	"ghorerbazar.top/organic/storefront/pkg/cart"
	"ghorerbazar.top/organic/storefront/pkg/catalog"
	"ghorerbazar.top/organic/storefront/pkg/checkout"
	"ghorerbazar.top/organic/storefront/pkg/global"
	"ghorerbazar.top/organic/storefront/pkg/redis"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	client := catalog.NewClient(global.GetCatalogBaseURL())

	var (
		store router.Store
		cache router.ProductCache
	)
	if global.GetRedisAddr() != "" {
		redisStore := redis.NewStore(redis.RedisClient())
		store = redisStore
		cache = redisStore
	} else {
		log.Printf("REDIS_ADDRESS not set, carts will not survive a restart")
		store = cart.NewMemoryStore()
	}

	api := &router.API{
		Catalog:  client,
		Store:    store,
		Cache:    cache,
		Checkout: checkout.NewManager(client, store),
	}

	engine := router.NewEngine(api)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Storefront is running on port %s", port)

	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
