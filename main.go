package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/budgetme/admin-api/config"
	"github.com/budgetme/admin-api/handlers"
	"github.com/budgetme/admin-api/middleware"
	"github.com/budgetme/admin-api/routes"
	"github.com/budgetme/admin-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	maxUsage := services.DefaultMaxPredictions
	if v := os.Getenv("MAX_PREDICTIONS_PER_MONTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxUsage = n
		}
	}

	feed := services.NewChangeFeed()
	familyService := services.NewFamilyService(db, feed)
	goalService := services.NewGoalService(db, feed)
	usageService := services.NewUsageService(db, maxUsage)
	predictionService := services.NewPredictionService(db, usageService, feed)
	settingsService := services.NewSettingsService(db, feed)
	insightsService := services.NewInsightsService()

	go scheduleMaintenance(usageService, predictionService)

	wsHandler := handlers.NewWSHandler(feed)
	defer wsHandler.Close()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	allowedOrigins := []string{
		frontendURL,
		"https://budgetme.app",
		"https://admin.budgetme.app",
	}

	log.Printf("🌍 CORS: Allowing origins:")
	for _, origin := range allowedOrigins {
		log.Printf("   - %s", origin)
	}

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		log.Printf("📨 %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		duration := time.Since(start)
		log.Printf("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.NewRateLimiter(100, time.Minute))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, db)
		routes.SetupAdminRoutes(v1, db, usageService, predictionService)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/ws", wsHandler.HandleWS)
			routes.SetupFamilyRoutes(protected, familyService)
			routes.SetupGoalRoutes(protected, goalService)
			routes.SetupPredictionRoutes(protected, predictionService, usageService, insightsService)
			routes.SetupSettingsRoutes(protected, settingsService)
			routes.SetupUserRoutes(protected, db)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// scheduleMaintenance resets lapsed usage windows and purges expired
// predictions once a day.
func scheduleMaintenance(usage *services.UsageService, predictions *services.PredictionService) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	runMaintenance(usage, predictions)
	for range ticker.C {
		runMaintenance(usage, predictions)
	}
}

func runMaintenance(usage *services.UsageService, predictions *services.PredictionService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if n, err := usage.CleanupExpired(ctx); err != nil {
		log.Printf("❌ Usage cleanup failed: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Reset %d expired usage windows", n)
	}

	if n, err := predictions.PurgeExpired(ctx); err != nil {
		log.Printf("❌ Prediction cleanup failed: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Purged %d expired predictions", n)
	}
}
