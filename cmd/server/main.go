package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/fjod/go_inventory/internal/analysis"
	"github.com/fjod/go_inventory/internal/cart"
	"github.com/fjod/go_inventory/internal/catalog"
	"github.com/fjod/go_inventory/internal/catalog/cache"
	"github.com/fjod/go_inventory/internal/checkout"
	"github.com/fjod/go_inventory/internal/db"
	h "github.com/fjod/go_inventory/internal/http"
	"github.com/fjod/go_inventory/internal/orders"
	"github.com/fjod/go_inventory/internal/publisher"
	"github.com/fjod/go_inventory/internal/recommend"
	"github.com/fjod/go_inventory/internal/wishlist"
)

type Config struct {
	HTTPPort        string
	DBPath          string
	MigrationsPath  string
	RedisAddr       string // empty disables redis (memory cart store, no catalog cache)
	KafkaBrokers    string // empty disables the outbox publisher
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./inventory.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("inventory server starting...")

	cfg := loadConfig()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Redis is optional; without it carts live in process memory and the
	// catalog reads straight from sqlite.
	var productCache cache.ProductCache
	var cartStore cart.Store = cart.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		productCache = cache.NewRedisCache(redisClient)
		cartStore = cart.NewRedisStore(redisClient)
		log.Printf("Connected to redis at %s", cfg.RedisAddr)
	}

	catalogRepo := catalog.NewSQLiteRepository(database)
	catalogService := catalog.NewService(catalogRepo, productCache)

	cartService := cart.NewService(cartStore, catalogService)

	checkoutRepo := checkout.NewRepository(database)
	checkoutService := checkout.NewService(checkoutRepo, catalogService, cartService)

	orderLedger := orders.NewRepository(database)
	analysisService := analysis.NewService(orderLedger)
	recommendService := recommend.NewService(orderLedger, catalogService)

	wishlistRepo := wishlist.NewSQLiteRepository(database)
	wishlistService := wishlist.NewService(wishlistRepo, catalogService)

	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		poller := publisher.NewOutboxPoller(checkoutRepo, brokers...)
		go poller.Run(pollerCtx)
		log.Printf("Outbox publisher started, brokers: %v", brokers)
	}

	productHandler := h.NewProductHandler(catalogService, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(orderLedger, recommendService, cfg.RequestTimeout)
	wishlistHandler := h.NewWishlistHandler(wishlistService, cfg.RequestTimeout)
	analysisHandler := h.NewAnalysisHandler(analysisService, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.MockAuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Get("/{product_id}", productHandler.Get)
			r.Put("/{product_id}", productHandler.Update)
			r.Delete("/{product_id}", productHandler.Delete)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.List)
			r.Post("/", wishlistHandler.Add)
			r.Delete("/{product_id}", wishlistHandler.Remove)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListMyOrders)
			r.Get("/all", ordersHandler.ListAllOrders)
			r.Get("/{order_id}", ordersHandler.GetOrder)
		})
		r.Get("/recommendations", ordersHandler.Recommendations)
		r.Get("/analysis", analysisHandler.Summary)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Inventory server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
