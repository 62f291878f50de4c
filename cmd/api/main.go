package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/soldoshop/upn-nalog/internal/application/service"
	"github.com/soldoshop/upn-nalog/internal/config"
	"github.com/soldoshop/upn-nalog/internal/infrastructure/database"
	"github.com/soldoshop/upn-nalog/internal/infrastructure/repository"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/handler"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/middleware"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/routes"
	"github.com/soldoshop/upn-nalog/pkg/logger"
	"github.com/soldoshop/upn-nalog/pkg/printer"
	"github.com/soldoshop/upn-nalog/pkg/upnqr"
	"github.com/soldoshop/upn-nalog/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.App.Name, cfg.App.Env, cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	if cfg.Operator.PasswordHash == "" {
		log.Warn().Msg("OPERATOR_PASSWORD_HASH is not set, token requests will be refused")
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	// Initialize services
	authService := service.NewAuthService(cfg.Operator, jwtManager)
	slipService := service.NewSlipService(
		orderRepo,
		accountRepo,
		upnqr.NewRenderer(cfg.UPN.QRSize),
		service.SlipServiceConfig{
			Store:        cfg.Store,
			Defaults:     cfg.UPN.Defaults(),
			Locale:       cfg.UPN.Locale,
			Instructions: cfg.UPN.Instructions,
		},
	)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize printer, printing disabled")
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, slipService, cfg.Printer.Type, cfg.Printer.CharWidth)

	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Slip:    handler.NewSlipHandler(slipService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Close()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		RateLimiter: rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", port).Str("env", cfg.App.Env).Msgf("starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
