package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ojamarket/backend/internal/auth"
	"github.com/ojamarket/backend/internal/config"
	"github.com/ojamarket/backend/internal/db"
	"github.com/ojamarket/backend/internal/handlers"
	"github.com/ojamarket/backend/internal/repository"
	"github.com/ojamarket/backend/internal/service"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("✓ Configuration loaded")

	// 2. Initialize database connection
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer pool.Close()

	// 3. Initialize layers
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	emailService := service.NewEmailService(service.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		AppName:   cfg.AppName,
	})

	codec := auth.NewTokenCodec(auth.TokenConfig{
		AccessSecret:       cfg.JWTAccessSecret,
		RefreshSecret:      cfg.JWTRefreshSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
	})

	otpService := service.NewOtpService(userRepo, emailService)
	authService := service.NewAuthService(userRepo, otpService, codec)
	productService := service.NewProductService(productRepo, cfg.CDNBaseURL)

	authHandler := handlers.NewAuthHandler(authService, codec)
	productHandler := handlers.NewProductHandler(productService, codec)
	healthHandler := handlers.NewHealthHandler()

	// 4. Setup Gin router
	router := gin.Default()
	router.Use(handlers.CORSMiddleware(cfg.CORSAllowedOrigins))

	healthHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)

	// 5. Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("🚀 Server starting on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("✓ Server exited")
}
