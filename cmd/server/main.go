package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/finledger/finledger-backend/internal/adapter/httpapi"
	"github.com/finledger/finledger-backend/internal/adapter/repository/postgres"
	"github.com/finledger/finledger-backend/internal/config"
	"github.com/finledger/finledger-backend/internal/usecase/account"
	"github.com/finledger/finledger-backend/internal/usecase/asset"
	"github.com/finledger/finledger-backend/internal/usecase/seeder"
	"github.com/finledger/finledger-backend/internal/usecase/trading"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// 1. Load configuration
	cfgPath := os.Getenv("FINLEDGER_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// 2. Setup database
	db, err := postgres.NewDB(cfg.Database.ConnectionString())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// 3. Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	userRepo := postgres.NewUserRepository(db)
	txRunner := postgres.NewTxRunner(db)

	// 4. Initialize services
	accountService := account.NewService(accountRepo)
	assetService := asset.NewService(assetRepo)
	tradingService := trading.NewService(accountRepo, assetRepo, txRunner)

	// 5. Seed the pre-registered users and assets
	if cfg.Seed {
		if err := seeder.NewSeeder(userRepo, accountRepo, assetRepo).Seed(ctx); err != nil {
			log.WithError(err).Fatal("failed to seed data")
		}
		log.Info("seed data provisioned")
	}

	// 6. Start HTTP server
	server := httpapi.NewServer(log, accountService, assetService, tradingService, userRepo)

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("http server listening")
		if err := server.Listen(cfg.Server.Addr); err != nil {
			log.WithError(err).Fatal("failed to serve http")
		}
	}()

	waitForShutdown(log, server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(log *logrus.Logger, server *httpapi.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.WithField("signal", sig.String()).Info("shutting down")

	if err := server.Shutdown(); err != nil {
		log.WithError(err).Error("failed to shut down http server")
	}
	log.Info("http server stopped")
}
