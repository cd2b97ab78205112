package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"rooneyform-backend/internal/client"
	"rooneyform-backend/internal/config"
	"rooneyform-backend/internal/logger"
	"rooneyform-backend/internal/repository"
	"rooneyform-backend/internal/server"
	"rooneyform-backend/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, cfg.Environment.Name)

	db := client.InitSqliteClient(cfg.DatabaseURL)
	tgClient := client.NewTelegramClient(&cfg.Telegram)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	adminRepo := repository.NewAdminAccountRepository(db)

	notifier := service.NewTelegramNotifier(tgClient, &cfg.Telegram, log)

	catalogService := service.NewCatalogService(db, productRepo, categoryRepo, subRepo, notifier, cfg.BaseURL, log)
	cartService := service.NewCartService(db, cartRepo, favoriteRepo, productRepo, cfg.BaseURL, log)
	orderService := service.NewOrderService(db, cartRepo, orderRepo, notifier, log)
	botService := service.NewBotService(userRepo, subRepo, notifier, log)
	authService := service.NewAuthService(adminRepo, cfg.JWT, cfg.Admin)

	srv := server.NewServer(
		catalogService,
		cartService,
		orderService,
		botService,
		authService,
		userRepo,
		cfg.StaticDir,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
