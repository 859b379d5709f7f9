package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/autotradecenter/autotrade-api/config"
	"github.com/autotradecenter/autotrade-api/controllers"
	"github.com/autotradecenter/autotrade-api/middleware"
	"github.com/autotradecenter/autotrade-api/models"
	"github.com/autotradecenter/autotrade-api/services"
	"github.com/autotradecenter/autotrade-api/utils"
)

func main() {
	// Basic logging
	log.Println("Starting AutoTrade Center API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Configuration warning: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Employee{},
		&models.Car{},
		&models.Sale{},
		&models.PurchaseRequest{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Session registry for logged-in users
	services.InitSessionService()

	// Vehicle photo storage: S3 when a bucket is configured, local files otherwise
	if cfg != nil && cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitPhotoService(s3Service)
		log.Printf("Storing vehicle photos in S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		services.InitLocalPhotoService(utils.UploadDir)
		log.Println("AWS_S3_BUCKET not set, storing vehicle photos locally")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Locally stored vehicle photos
		v1.GET("/uploads/:filename", controllers.GetUploadedPhoto)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/logout", middleware.RequireSession(), controllers.Logout)
		}

		cars := v1.Group("/cars", middleware.RequireSession())
		{
			cars.GET("", middleware.RequireAction(middleware.ActionCarsViewAll), controllers.ListCars)
			cars.GET("/available", middleware.RequireAction(middleware.ActionCarsViewAvailable), controllers.ListAvailableCars)
			cars.GET("/:id", middleware.RequireAction(middleware.ActionCarsViewAll), controllers.GetCar)
			cars.POST("", middleware.RequireAction(middleware.ActionCarsManage), controllers.CreateCar)
			cars.PUT("/:id", middleware.RequireAction(middleware.ActionCarsManage), controllers.UpdateCar)
			cars.DELETE("/:id", middleware.RequireAction(middleware.ActionCarsDelete), controllers.DeleteCar)
			cars.POST("/:id/photo", middleware.RequireAction(middleware.ActionPhotosManage), controllers.UploadCarPhoto)
		}

		clients := v1.Group("/clients", middleware.RequireSession())
		{
			clients.GET("", middleware.RequireAction(middleware.ActionClientsView), controllers.ListClients)
			clients.DELETE("/:id", middleware.RequireAction(middleware.ActionClientsDelete), controllers.DeleteClient)
		}

		employees := v1.Group("/employees", middleware.RequireSession())
		{
			employees.GET("", middleware.RequireAction(middleware.ActionEmployeesView), controllers.ListEmployees)
			employees.DELETE("/:id", middleware.RequireAction(middleware.ActionEmployeesDelete), controllers.DeleteEmployee)
		}

		sales := v1.Group("/sales", middleware.RequireSession())
		{
			sales.GET("", middleware.RequireAction(middleware.ActionSalesViewAll), controllers.ListSales)
			sales.GET("/my", middleware.RequireAction(middleware.ActionSalesViewOwn), controllers.ListMySales)
			sales.POST("", middleware.RequireAction(middleware.ActionCarsSell), controllers.CreateSale)
		}

		requests := v1.Group("/requests", middleware.RequireSession())
		{
			requests.GET("", middleware.RequireAction(middleware.ActionRequestsView), controllers.ListRequests)
			requests.GET("/:id", middleware.RequireAction(middleware.ActionRequestsView), controllers.GetRequest)
			requests.POST("", middleware.RequireAction(middleware.ActionRequestsCreate), controllers.CreateRequest)
			requests.DELETE("/:id", middleware.RequireAction(middleware.ActionRequestsDelete), controllers.DeleteRequest)
		}
	}

	// Start server
	port := ":8080"
	if cfg != nil && cfg.Port != "" {
		port = ":" + cfg.Port
	}
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "AutoTrade Center API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db, err := config.EnsureDB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
