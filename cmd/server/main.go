package main

import (
	"context"
	"log"
	"os"
	"time"

	"shop-service/internal/controllers/http"
	"shop-service/internal/infra"
	mmysql "shop-service/internal/infra/mysql"
	"shop-service/internal/infra/rabbitmq"
	"shop-service/internal/infra/redislock"
	mysqlrepo "shop-service/internal/repository/mysql"
	"shop-service/internal/services"
	"shop-service/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)
	outboxRepo := mysqlrepo.NewOutboxRepository(db)

	productClient := infra.NewProductClient(os.Getenv("PRODUCT_SERVICE_URL"), 2*time.Second)
	authClient := infra.NewAuthClient(os.Getenv("AUTH_SERVICE_URL"), 2*time.Second)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "shop.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	cartService := services.NewCartService(cartRepo, productClient)
	cartService.SetRedisClient(redisClient)

	locker := redislock.NewUserLock(redisClient)
	checkoutService := services.NewCheckoutService(cartRepo, orderRepo, productClient, locker)
	orderService := services.NewOrderService(orderRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := workers.NewOutboxRelay(outboxRepo, publisher)
	go relay.Run(ctx)

	handler := http.NewHandler(cartService, checkoutService, orderService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r, http.AuthRequired(authClient))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting shop service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
