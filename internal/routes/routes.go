package routes

import (
	"github.com/gin-gonic/gin"

	"ayvcodr/internal/handlers"
	"ayvcodr/internal/middleware"
	"ayvcodr/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authService services.AuthService,
	accountService services.AccountService,
	apiKeyService services.APIKeyService,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	apiKeyHandler *handlers.APIKeyHandler,
	endpointHandler *handlers.EndpointHandler,
	dashboardHandler *handlers.DashboardHandler,
	privacyHandler *handlers.PrivacyHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/request-password-reset", authHandler.RequestPasswordReset)
	r.POST("/reset-password", authHandler.ResetPassword)
	r.POST("/analyze", endpointHandler.Analyze)

	// пользовательские эндпоинты живут на X-API-Key, не на bearer-токене
	r.POST("/api/:username/custom",
		middleware.APIKeyAuth(accountService, apiKeyService),
		endpointHandler.Custom,
	)

	// ---- protected
	r.Use(middleware.AuthMiddleware(authService, accountService))

	// ACCOUNT
	r.GET("/profile", accountHandler.GetProfile)
	r.PUT("/profile", accountHandler.UpdateProfile)
	r.POST("/change-password", accountHandler.ChangePassword)
	r.DELETE("/delete-account", accountHandler.DeleteAccount)

	// USERS
	users := r.Group("/users")
	{
		users.GET("/", accountHandler.ListAccounts)
		users.GET("/:id", accountHandler.GetAccountByID)
	}

	// USAGE
	usage := r.Group("/usage")
	{
		usage.GET("/me", accountHandler.GetMyUsage)
		usage.GET("/all", accountHandler.GetAllUsage)
	}

	// API KEYS
	keys := r.Group("/api-keys")
	{
		keys.GET("/", apiKeyHandler.List)
		keys.POST("/", apiKeyHandler.Create)
		keys.PATCH("/:id", apiKeyHandler.Update)
		keys.DELETE("/:id", apiKeyHandler.Delete)
	}

	// ENDPOINTS / ANALYSIS
	r.POST("/register-endpoint", endpointHandler.RegisterEndpoint)
	ai := r.Group("/ai")
	{
		ai.POST("/sentiment", endpointHandler.Sentiment)
		ai.POST("/keywords", endpointHandler.Keywords)
	}

	// DASHBOARD
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/api-usage-trend", dashboardHandler.GetUsageTrend)
		dashboard.GET("/endpoints", dashboardHandler.GetEndpoints)
	}

	// PRIVACY
	privacy := r.Group("/privacy")
	{
		privacy.POST("/export", privacyHandler.Export)
		privacy.POST("/delete", privacyHandler.Delete)
		privacy.POST("/consent", privacyHandler.UpdateConsent)
		privacy.GET("/audit-logs", privacyHandler.GetAuditLogs)
		privacy.GET("/audit-logs/csv", privacyHandler.DownloadAuditLogsCSV)
		privacy.GET("/audit-logs/pdf", privacyHandler.DownloadAuditLogsPDF)
	}

	return r
}
