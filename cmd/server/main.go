package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"stockdeck/internal/auth"
	"stockdeck/internal/inventory"
	"stockdeck/internal/jwttoken"
	"stockdeck/internal/notify"
	"stockdeck/internal/platform/config"
	"stockdeck/internal/platform/httpserver"
	"stockdeck/internal/platform/logger"
	"stockdeck/internal/platform/metrics"
	"stockdeck/internal/platform/postgres"
	"stockdeck/internal/platform/redis"
	httptransport "stockdeck/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx := context.Background()

	// Stores: postgres/redis when configured, in-memory fallbacks otherwise
	// so a bare `go run` works without any infrastructure.
	var (
		userStore         auth.UserStore         = auth.NewInMemoryUserStore()
		sessionStore      auth.SessionStore      = auth.NewInMemorySessionStore(cfg.SessionTTL)
		productStore      inventory.ProductStore = inventory.NewInMemoryProductStore()
		saleStore         inventory.SaleStore    = inventory.NewInMemorySaleStore()
		notificationStore notify.Store           = notify.NewInMemoryStore()
	)

	if cfg.PostgresDSN != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		users := auth.NewPostgresUserStore(pool)
		products := inventory.NewPostgresProductStore(pool)
		sales := inventory.NewPostgresSaleStore(pool)
		notifications := notify.NewPostgresStore(pool)
		for _, ensure := range []func(context.Context) error{
			users.EnsureSchema, products.EnsureSchema, sales.EnsureSchema, notifications.EnsureSchema,
		} {
			if err := ensure(ctx); err != nil {
				log.Error("schema setup failed", "error", err)
				os.Exit(1)
			}
		}
		userStore, productStore, saleStore, notificationStore = users, products, sales, notifications
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sessionStore = auth.NewRedisSessionStore(redisClient.Client, cfg.SessionTTL)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	tracker := auth.NewTracker()
	authService := auth.NewService(userStore, sessionStore, jwtService, tracker, m, log, cfg.SessionTTL, cfg.BcryptCost)

	emitter := notify.NewEmitter(notificationStore, m, log)
	cache := inventory.NewCache()
	inventoryService := inventory.NewService(productStore, saleStore, emitter, cache, m, log)

	// Principal changes clear the snapshot cache before the publish returns.
	trackerToken := tracker.Subscribe(cache.OnAuthChange)
	defer tracker.Unsubscribe(trackerToken)

	handler := httptransport.NewHandler(authService, inventoryService, log)
	router := httptransport.NewRouter(handler, jwtService)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting stockdeck", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
