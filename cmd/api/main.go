package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"harvest-direct/internal/cartstore"
	"harvest-direct/internal/config"
	"harvest-direct/internal/db"
	"harvest-direct/internal/httpserver"
	productrepo "harvest-direct/internal/repository/product"
	cartsvc "harvest-direct/internal/service/cart"
	inventorysvc "harvest-direct/internal/service/inventory"
	productsvc "harvest-direct/internal/service/product"
	sessionsvc "harvest-direct/internal/service/session"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var store cartstore.Store
	switch cfg.CartBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		store = cartstore.NewRedis(client, cfg.CartTTL)
		logger.Printf("cart store: redis at %s", cfg.RedisAddr)
	case "postgres":
		store = cartstore.NewPostgres(dbpool, cfg.CartTTL)
		logger.Printf("cart store: postgres, ttl=%s", cfg.CartTTL)
	case "memory":
		store = cartstore.NewMemory(cfg.CartTTL)
		logger.Printf("cart store: in-memory, ttl=%s", cfg.CartTTL)
	default:
		logger.Fatalf("unknown CART_BACKEND %q", cfg.CartBackend)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(store, productRepo, cfg.ShippingFeeCents)
	inventoryService := inventorysvc.New(productRepo)
	sessionService := sessionsvc.New()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		SessionSvc:   sessionService,
		CartSvc:      cartService,
		InventorySvc: inventoryService,
		ProductSvc:   productService,
		CORSOrigins:  cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
