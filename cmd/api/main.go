package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"retail-backoffice/internal/client"
	"retail-backoffice/internal/config"
	"retail-backoffice/internal/repository"
	"retail-backoffice/internal/server"
	"retail-backoffice/internal/service"
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

	setupLogger(cfg.Log)

	db := client.InitMysqlClient(cfg.DatabaseURL)

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	productRepo := repository.NewProductRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	orderService := service.NewOrderService(db, orderRepo)
	paymentService := service.NewPaymentService(db, cfg.Paging, orderRepo, paymentRepo)
	productionService := service.NewProductionService(db, cfg.Stock, productionRepo, productRepo)
	catalogService := service.NewCatalogService(db, productRepo, customerRepo)

	srv := server.NewServer(orderService, paymentService, productionService, catalogService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logrus.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logrus.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("HTTP server shutdown error")
	}
}

func setupLogger(cfg config.Log) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}
}
