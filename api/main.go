package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/chihabend/gestion-stock/internal/cache"
	"github.com/chihabend/gestion-stock/internal/config"
	"github.com/chihabend/gestion-stock/internal/db"
	"github.com/chihabend/gestion-stock/internal/http/handlers"
	"github.com/chihabend/gestion-stock/internal/http/ratelimit"
	"github.com/chihabend/gestion-stock/internal/http/router"
	"github.com/chihabend/gestion-stock/internal/repo"

	_ "github.com/chihabend/gestion-stock/docs"
)

// @title Gestion Stock API
// @version 1.0
// @description REST API de gestion de stock de produits.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration:", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	var responseCache cache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("⚠️ Redis unavailable, response cache disabled: %v", err)
		} else {
			defer rdb.Close()
			responseCache = cache.NewRedisCache(rdb)
		}
	}

	go ratelimit.StartVisitorCleanupLoop()

	h := handlers.New(repo.NewPostgresProductRepository(database), responseCache)
	r := router.NewRouter(h, responseCache, cfg.CacheTTL)

	log.Println("✅ Server running on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, ratelimit.Middleware(r)); err != nil {
		log.Fatal(err)
	}
}
