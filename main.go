package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yky10/BACKEND-ML/config"
	"github.com/yky10/BACKEND-ML/controllers"
	"github.com/yky10/BACKEND-ML/middleware"
	"github.com/yky10/BACKEND-ML/models"
	"github.com/yky10/BACKEND-ML/services"
)

func main() {
	// Basic logging
	log.Println("Starting restaurant POS API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage for dish photos
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(s3Service)

	// Initialize Gin router
	router := gin.Default()

	// Allow the POS terminals' origin
	router.Use(cors.Default())

	// Health check endpoint
	router.GET("/health", healthCheck)

	// Database status endpoint
	router.GET("/database/status", databaseStatus)

	// Daily cash register report
	router.GET("/arqueo-caja/:fecha", controllers.GetDailyCashRegister)

	// Order lifecycle; open to the floor terminals
	orden := router.Group("/orden")
	{
		orden.POST("/guardar", controllers.CreateOrder)
		orden.GET("/listar", controllers.ListOrders)
		orden.POST("/enviar-orden/:id", controllers.SendOrder)
		orden.GET("/ordenes-preparando", controllers.ListPreparingOrders)
		orden.POST("/responder-orden/:id", controllers.RespondOrder)
		orden.GET("/ordenes-listo", controllers.ListReadyOrders)
		orden.POST("/entregar-orden/:id", controllers.DeliverOrder)
		orden.GET("/ordenes-entregados", controllers.ListDeliveredOrders)
		orden.GET("/ordenes-entregados/:usuarioId", controllers.ListDeliveredOrdersByUser)
	}

	// Catalog; mutations require a valid token
	categoria := router.Group("/categoria")
	{
		categoria.GET("/listar", controllers.ListCategories)

		protected := categoria.Group("", middleware.EnsureValidToken(cfg))
		protected.POST("/guardar", controllers.CreateCategory)
		protected.PUT("/actualizar", controllers.UpdateCategory)
		protected.DELETE("/eliminar/:id", controllers.DeleteCategory)
	}

	platillo := router.Group("/platillo")
	{
		platillo.GET("/listar", controllers.ListDishes)

		protected := platillo.Group("", middleware.EnsureValidToken(cfg))
		protected.POST("/guardar", controllers.CreateDish)
		protected.PUT("/actualizar", controllers.UpdateDish)
		protected.DELETE("/eliminar/:id", controllers.DeleteDish)
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant POS API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
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
