package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mehta-jewels/mehta-jewels-api/config"
	"github.com/mehta-jewels/mehta-jewels-api/controllers"
	"github.com/mehta-jewels/mehta-jewels-api/middleware"
	"github.com/mehta-jewels/mehta-jewels-api/models"
	"github.com/mehta-jewels/mehta-jewels-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Mehta Jewels catalog API server...")

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
	if err := db.AutoMigrate(&models.Design{}, &models.Customer{}, &models.Invoice{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	services.InitRenderService(time.Duration(cfg.RenderTimeoutSeconds) * time.Second)
	services.InitURLOpener(services.ShellOpener{})

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Design catalog
		v1.POST("/designs", controllers.AddDesign)
		v1.GET("/designs", controllers.GetDesigns)
		v1.PUT("/designs/:id", controllers.UpdateDesign)
		v1.DELETE("/designs/:id", controllers.DeleteDesign)

		// Customers
		v1.POST("/customers", controllers.AddCustomer)
		v1.GET("/customers", controllers.GetCustomers)
		v1.PUT("/customers/:id", controllers.UpdateCustomer)
		v1.DELETE("/customers/:id", controllers.DeleteCustomer)

		// Invoices
		v1.POST("/invoices", controllers.CreateInvoice)
		v1.GET("/invoices", controllers.GetAllInvoices)
		v1.PUT("/invoices/:id/status", controllers.UpdateInvoiceStatus)
		v1.DELETE("/invoices/:id", controllers.DeleteInvoice)
		v1.GET("/customers/:id/invoices", controllers.GetCustomerInvoices)

		// Billing and sharing
		v1.POST("/customers/:id/invoices/generate", controllers.GenerateInvoice)
		v1.POST("/customers/:id/share", controllers.ShareInvoice)
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
		"message": "Mehta Jewels catalog API is running",
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

	// Get list of tables through the migrator so it works on both dialects
	tables, err := db.Migrator().GetTables()
	if err != nil {
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
