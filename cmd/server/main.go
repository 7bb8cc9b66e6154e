package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lexcontract/lexcontract-api/internal/config"
	"github.com/lexcontract/lexcontract-api/internal/database"
	"github.com/lexcontract/lexcontract-api/internal/handlers"
	"github.com/lexcontract/lexcontract-api/internal/logging"
	"github.com/lexcontract/lexcontract-api/internal/middleware"
	"github.com/lexcontract/lexcontract-api/internal/repository"
	"github.com/lexcontract/lexcontract-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := logging.Init(cfg.LogLevel, cfg.GinMode != "release")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	contractRepo := repository.NewContractRepository(db)

	// Services
	mailer := services.NewMailer(cfg, logger)
	authService := services.NewAuthService(userRepo, mailer, cfg)
	userService := services.NewUserService(userRepo, mailer)
	clientService := services.NewClientService(clientRepo)
	contractService := services.NewContractService(db)
	statsService := services.NewStatsService(contractRepo, clientRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	clientHandler := handlers.NewClientHandler(clientService)
	contractHandler := handlers.NewContractHandler(contractService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "LexContract API is running",
		})
	})

	requireAuth := middleware.RequireAuth(authService)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/token", authHandler.Login)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// User routes (protected; collection management is admin only)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", userHandler.Me)
			users.PUT("/me", userHandler.UpdateMe)
			users.POST("/me/change-password", userHandler.ChangePassword)
			users.GET("/abogados", userHandler.ListLawyers)

			admin := users.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("", userHandler.CreateUser)
				admin.GET("", userHandler.ListUsers)
				admin.GET("/:id", userHandler.GetUser)
				admin.PUT("/:id", userHandler.UpdateUser)
			}
		}

		// Role routes (admin only)
		roles := api.Group("/roles")
		roles.Use(requireAuth, middleware.RequireAdmin())
		{
			roles.GET("", userHandler.ListRoles)
		}

		// Client routes (protected, owner scoped)
		clients := api.Group("/clients")
		clients.Use(requireAuth)
		{
			clients.POST("", clientHandler.CreateClient)
			clients.GET("", clientHandler.ListClients)
			clients.GET("/next-id", clientHandler.NextClientID)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PUT("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
			clients.POST("/:id/restore", clientHandler.RestoreClient)
		}

		// Contract and library routes (protected)
		contracts := api.Group("/contracts")
		contracts.Use(requireAuth)
		{
			contracts.GET("/clausulas", contractHandler.ListClauses)
			contracts.GET("/plantillas", contractHandler.ListTemplates)
			contracts.POST("/clausula", contractHandler.CreateClause)
			contracts.POST("/plantilla", contractHandler.CreateTemplate)
			contracts.PUT("/clausula/:id", contractHandler.UpdateLibraryItem)
			contracts.PUT("/plantilla/:id", contractHandler.UpdateLibraryItem)
			contracts.DELETE("/clausula/:id", contractHandler.DeleteLibraryItem)
			contracts.DELETE("/plantilla/:id", contractHandler.DeleteLibraryItem)
			contracts.POST("/generar-desde-plantilla/:id", contractHandler.GenerateFromTemplate)

			contracts.POST("", contractHandler.CreateContract)
			contracts.GET("", contractHandler.ListContracts)
			contracts.GET("/:id", contractHandler.GetContract)
			contracts.PUT("/:id", contractHandler.UpdateContract)
			contracts.DELETE("/:id", contractHandler.DeleteContract)
			contracts.GET("/:id/pagos", contractHandler.ListPayments)
		}

		// Stats routes (protected)
		stats := api.Group("/stats")
		stats.Use(requireAuth)
		{
			stats.GET("", statsHandler.GetStats)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
