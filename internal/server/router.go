// Package server assembles the gin engine: middleware, handlers and routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/stoicaandrei/monney2/internal/config"
	_ "github.com/stoicaandrei/monney2/internal/docs" // registers swagger docs
	"github.com/stoicaandrei/monney2/internal/handlers"
	"github.com/stoicaandrei/monney2/internal/metrics"
	"github.com/stoicaandrei/monney2/internal/middleware"
	"github.com/stoicaandrei/monney2/internal/services"
)

// Services bundles every servicer the HTTP layer depends on.
type Services struct {
	User        services.UserServicer
	Wallet      services.WalletServicer
	Category    services.CategoryServicer
	Tag         services.TagServicer
	Transaction services.TransactionServicer
	Dashboard   services.DashboardServicer
	Preference  services.PreferenceServicer
	Help        services.HelpServicer
	Audit       services.AuditServicer
}

// NewServices builds the gorm-backed services.
func NewServices(db *gorm.DB, cfg *config.Config) Services {
	return Services{
		User:        services.NewUserService(db),
		Wallet:      services.NewWalletService(db),
		Category:    services.NewCategoryService(db),
		Tag:         services.NewTagService(db),
		Transaction: services.NewTransactionService(db),
		Dashboard:   services.NewDashboardService(db, cfg.DashboardLocation, nil),
		Preference:  services.NewPreferenceService(db),
		Help:        services.NewHelpService(db),
		Audit:       services.NewAuditService(db),
	}
}

// cors allows browser clients from any origin.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// NewRouter wires handlers onto a new gin engine.
func NewRouter(svc Services, cfg *config.Config) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.User, svc.Audit)
	walletHandler := handlers.NewWalletHandler(svc.Wallet, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Category, svc.Audit)
	tagHandler := handlers.NewTagHandler(svc.Tag)
	transactionHandler := handlers.NewTransactionHandler(svc.Transaction, svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, cfg.DashboardWindowDays)
	preferenceHandler := handlers.NewPreferenceHandler(svc.Preference)
	helpHandler := handlers.NewHelpHandler(svc.Help)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.AuthMiddleware(), authHandler.Logout)

	// Anonymous callers are allowed; a presented token must still be valid.
	optional := v1.Group("")
	optional.Use(middleware.OptionalAuthMiddleware())

	dashboard := optional.Group("/dashboard")
	dashboard.GET("", dashboardHandler.GetOverview)
	dashboard.GET("/stats", dashboardHandler.GetStats)
	dashboard.GET("/daily", dashboardHandler.GetDailyBreakdown)
	dashboard.GET("/expenses-by-category", dashboardHandler.GetExpensesByCategory)
	dashboard.GET("/sankey", dashboardHandler.GetSankey)

	optional.POST("/help", helpHandler.SubmitHelp)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	wallets := protected.Group("/wallets")
	wallets.POST("", walletHandler.CreateWallet)
	wallets.GET("", walletHandler.ListWallets)
	wallets.PUT("/reorder", walletHandler.ReorderWallets)
	wallets.GET("/:id", walletHandler.GetWalletByID)
	wallets.PUT("/:id", walletHandler.UpdateWallet)
	wallets.DELETE("/:id", walletHandler.DeleteWallet)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/tree", categoryHandler.GetCategoryTree)
	categories.PUT("/reorder", categoryHandler.ReorderCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	tags := protected.Group("/tags")
	tags.GET("", tagHandler.ListTags)
	tags.POST("", tagHandler.CreateTag)
	tags.PUT("/:id", tagHandler.RenameTag)
	tags.DELETE("/:id", tagHandler.DeleteTag)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	preferences := protected.Group("/preferences")
	preferences.GET("", preferenceHandler.GetPreferences)
	preferences.PUT("/currency", preferenceHandler.SetDefaultCurrency)

	return router
}
