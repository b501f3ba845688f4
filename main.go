package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/ken-eddy/salesApp/cache"
	"github.com/ken-eddy/salesApp/checkout"
	"github.com/ken-eddy/salesApp/config"
	"github.com/ken-eddy/salesApp/controllers"
	"github.com/ken-eddy/salesApp/database"
	"github.com/ken-eddy/salesApp/metrics"
	"github.com/ken-eddy/salesApp/middleware"
	"github.com/ken-eddy/salesApp/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.LoadConfig()

	// Connect to database
	repo, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer repo.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
	}

	m := metrics.NewServerMetrics(prometheus.DefaultRegisterer, "api")
	engine := checkout.NewEngine(repo, checkout.WithObserver(m))
	dashboard := cache.NewSummaryCache(redisClient, cache.DefaultSummaryKey, cfg.DashboardCacheTTL)
	h := controllers.NewHandler(repo, engine, dashboard, cfg.LowStockThreshold)

	// Initialize Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID(), m.Middleware(), middleware.Identity(cfg.JWTSecret))

	router.GET("/metrics", gin.WrapH(metrics.Handler(prometheus.DefaultGatherer)))
	routes.SetupRoutes(router, h)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
