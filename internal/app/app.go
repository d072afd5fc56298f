package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"ayvcodr/internal/config"
	"ayvcodr/internal/handlers"
	"ayvcodr/internal/pdf"
	"ayvcodr/internal/repositories"
	"ayvcodr/internal/routes"
	"ayvcodr/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ayvcodr/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	accountRepo := repositories.NewAccountRepository(db)
	apiKeyRepo := repositories.NewAPIKeyRepository(db)
	endpointRepo := repositories.NewEndpointRepository(db)
	callLogRepo := repositories.NewCallLogRepository(db)
	consentRepo := repositories.NewConsentRepository(db)
	auditLogRepo := repositories.NewAuditLogRepository(db)

	var resetStore repositories.PasswordResetStore
	if cfg.Auth.ResetStore == "postgres" {
		resetStore = repositories.NewPostgresResetStore(db)
	} else {
		resetStore = repositories.NewMemoryResetStore()
	}

	// === Services ===
	authService := services.NewAuthService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)

	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	accountService := services.NewAccountService(accountRepo, resetStore, emailService, authService)
	apiKeyService := services.NewAPIKeyService(apiKeyRepo)
	endpointService := services.NewEndpointService(endpointRepo, callLogRepo)
	dashboardService := services.NewDashboardService(callLogRepo, endpointRepo)
	privacyService := services.NewPrivacyService(consentRepo, auditLogRepo, callLogRepo, endpointRepo)

	reportGen := pdf.NewReportGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService)
	accountHandler := handlers.NewAccountHandler(accountService, dashboardService)
	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyService)
	endpointHandler := handlers.NewEndpointHandler(endpointService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	privacyHandler := handlers.NewPrivacyHandler(privacyService, reportGen)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authService,
		accountService,
		apiKeyService,
		authHandler,
		accountHandler,
		apiKeyHandler,
		endpointHandler,
		dashboardHandler,
		privacyHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-API-Key")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
