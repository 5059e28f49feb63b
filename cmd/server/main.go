package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ledgerbase/ledgerbase/config"
	"github.com/ledgerbase/ledgerbase/internal/api"
	"github.com/ledgerbase/ledgerbase/internal/api/handlers"
	"github.com/ledgerbase/ledgerbase/internal/core/account"
	"github.com/ledgerbase/ledgerbase/internal/core/auth"
	"github.com/ledgerbase/ledgerbase/internal/core/bank"
	"github.com/ledgerbase/ledgerbase/internal/core/statement"
	"github.com/ledgerbase/ledgerbase/internal/core/tag"
	"github.com/ledgerbase/ledgerbase/internal/core/transaction"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if cfg.JWT.Secret == "" {
		logger.Fatal().Msg("JWT_SECRET environment variable is required")
	}

	db, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	logger.Info().Msg("connected to database")

	// Repositories
	authRepo := auth.NewRepository(db)
	bankRepo, err := bank.NewRepository(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build bank repository")
	}
	accountRepo, err := account.NewRepository(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build account repository")
	}
	statementRepo, err := statement.NewRepository(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build statement repository")
	}
	transactionRepo, err := transaction.NewRepository(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build transaction repository")
	}
	tagRepo, err := tag.NewRepository(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build tag repository")
	}
	links := transaction.NewLinks(db)

	// Services
	authService := auth.NewService(authRepo, &cfg.JWT)
	validator := validation.NewValidator()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	bankHandler := handlers.NewBankHandler(bankRepo, validator)
	accountHandler := handlers.NewAccountHandler(accountRepo, bankRepo, validator)
	statementHandler := handlers.NewStatementHandler(statementRepo, accountRepo, transactionRepo, validator)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo, statementRepo, tagRepo, links, validator)
	tagHandler := handlers.NewTagHandler(tagRepo, links, validator)

	router := api.NewRouter(
		logger,
		authService,
		authHandler,
		bankHandler,
		accountHandler,
		statementHandler,
		transactionHandler,
		tagHandler,
	)

	engine := router.Setup(cfg.Server.Mode)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("shutting down server")
		db.Close()
		os.Exit(0)
	}()

	logger.Info().Str("port", cfg.Server.Port).Msg("starting server")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
