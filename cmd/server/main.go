// @title Alumni Hub Analytics API
// @version 1.0
// @description Read-only analytics backend for the alumni portal operator dashboard
// @contact.name API Support
// @contact.email support@example.com
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"
	"time"

	"alumnihub-be/config"
	"alumnihub-be/internal/analytics"
	"alumnihub-be/internal/database"
	"alumnihub-be/internal/handlers"
	"alumnihub-be/internal/middleware"
	"alumnihub-be/internal/repository"

	"github.com/gin-gonic/gin"

	_ "alumnihub-be/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	mongodb, err := database.NewMongoDB(cfg.MongoDBURI, cfg.MongoDBDatabase, cfg.MongoDBMaxPoolSize)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongodb.Disconnect()

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongodb.Database)
	recordSource := repository.NewRecordSourceRepository(mongodb.Database)

	// Initialize the analytics engine
	loc, err := time.LoadLocation(cfg.HeatmapTimeZone)
	if err != nil {
		log.Fatal("Invalid HEATMAP_TIMEZONE:", err)
	}
	engine := analytics.NewOrchestrator(recordSource, analytics.SystemClock(), analytics.Options{
		QueryTimeout: cfg.QueryTimeout,
		Collapse:     analytics.CollapsePolicy{Rank: cfg.CollapseRank, Share: cfg.CollapseShare},
		Location:     loc,
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, userRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(engine)

	// Initialize Gin
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// Public routes
	public := r.Group("/api")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "Alumni Hub Analytics API",
				"version": "1.0.0",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
		}
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/auth/me", authHandler.GetMe)
	}

	// Admin-only analytics routes
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminRequired(userRepo))
	{
		admin.GET("/metrics", analyticsHandler.GetCollectionMetrics)

		reports := admin.Group("/analytics")
		{
			reports.GET("/user-growth", analyticsHandler.GetUserGrowth)
			reports.GET("/category-distribution", analyticsHandler.GetCategoryDistribution)
			reports.GET("/engagement-metrics", analyticsHandler.GetEngagementMetrics)
			reports.GET("/alumni-by-year", analyticsHandler.GetAlumniByYear)
			reports.GET("/department-distribution", analyticsHandler.GetDepartmentDistribution)
			reports.GET("/recent-activity", analyticsHandler.GetRecentActivity)
			reports.GET("/stats-summary", analyticsHandler.GetStatsSummary)
			reports.GET("/top-articles", analyticsHandler.GetTopArticles)
			reports.GET("/user-activity-heatmap", analyticsHandler.GetUserActivityHeatmap)
			reports.GET("/content-performance", analyticsHandler.GetContentPerformance)
		}
	}

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Connected to MongoDB: %s", cfg.MongoDBDatabase)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
