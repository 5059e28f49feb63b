package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ledgerbase/ledgerbase/internal/api/handlers"
	"github.com/ledgerbase/ledgerbase/internal/api/middleware"
	"github.com/ledgerbase/ledgerbase/internal/core/auth"
)

type Router struct {
	engine             *gin.Engine
	logger             zerolog.Logger
	authMiddleware     *middleware.AuthMiddleware
	authHandler        *handlers.AuthHandler
	bankHandler        *handlers.BankHandler
	accountHandler     *handlers.AccountHandler
	statementHandler   *handlers.StatementHandler
	transactionHandler *handlers.TransactionHandler
	tagHandler         *handlers.TagHandler
}

func NewRouter(
	logger zerolog.Logger,
	authService *auth.Service,
	authHandler *handlers.AuthHandler,
	bankHandler *handlers.BankHandler,
	accountHandler *handlers.AccountHandler,
	statementHandler *handlers.StatementHandler,
	transactionHandler *handlers.TransactionHandler,
	tagHandler *handlers.TagHandler,
) *Router {
	return &Router{
		logger:             logger,
		authMiddleware:     middleware.NewAuthMiddleware(authService),
		authHandler:        authHandler,
		bankHandler:        bankHandler,
		accountHandler:     accountHandler,
		statementHandler:   statementHandler,
		transactionHandler: transactionHandler,
		tagHandler:         tagHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestLogger(r.logger))

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", r.authHandler.Register)
		authRoutes.POST("/login", r.authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		protected.GET("/auth/me", r.authHandler.Me)

		banks := protected.Group("/banks")
		{
			banks.GET("", r.bankHandler.List)
			banks.POST("", r.bankHandler.Create)
			banks.GET("/:id", r.bankHandler.Get)
			banks.PUT("/:id", r.bankHandler.Update)
			banks.DELETE("/:id", r.bankHandler.Delete)
		}

		accounts := protected.Group("/accounts")
		{
			accounts.GET("", r.accountHandler.List)
			accounts.POST("", r.accountHandler.Create)
			accounts.GET("/:id", r.accountHandler.Get)
			accounts.PUT("/:id", r.accountHandler.Update)
			accounts.DELETE("/:id", r.accountHandler.Delete)
		}

		statements := protected.Group("/statements")
		{
			statements.GET("", r.statementHandler.List)
			statements.POST("", r.statementHandler.Create)
			statements.GET("/:id", r.statementHandler.Get)
			statements.PUT("/:id", r.statementHandler.Update)
			statements.DELETE("/:id", r.statementHandler.Delete)
			statements.GET("/:id/transactions", r.statementHandler.Transactions)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", r.transactionHandler.List)
			transactions.POST("", r.transactionHandler.Create)
			transactions.GET("/:id", r.transactionHandler.Get)
			transactions.PUT("/:id", r.transactionHandler.Update)
			transactions.DELETE("/:id", r.transactionHandler.Delete)
			transactions.GET("/:id/tags", r.transactionHandler.Tags)
			transactions.PUT("/:id/tags/:tagId", r.transactionHandler.AttachTag)
			transactions.DELETE("/:id/tags/:tagId", r.transactionHandler.DetachTag)
		}

		tags := protected.Group("/tags")
		{
			tags.GET("", r.tagHandler.List)
			tags.POST("", r.tagHandler.Create)
			tags.GET("/:id", r.tagHandler.Get)
			tags.PUT("/:id", r.tagHandler.Update)
			tags.DELETE("/:id", r.tagHandler.Delete)
			tags.GET("/:id/transactions", r.tagHandler.Transactions)
		}
	}
}
