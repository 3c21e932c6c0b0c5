package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tshirt-studio-backend/internal/auth"
	"tshirt-studio-backend/internal/config"
	"tshirt-studio-backend/internal/database"
	"tshirt-studio-backend/internal/handlers"
	"tshirt-studio-backend/internal/metrics"
	"tshirt-studio-backend/internal/middleware"
	"tshirt-studio-backend/internal/replicate"
	"tshirt-studio-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	// Create the one database client shared by every handler. It is closed
	// on shutdown, never recreated per request.
	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Initialize token service and upload storage
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	uploader := storage.NewUploader(cfg.PublicDir)

	// Initialize Replicate client
	replicateClient := replicate.NewClient(cfg.ReplicateAPIBaseURL, cfg.ReplicateAPIToken, cfg.RemoveBgModelVersion)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(dbClient, tokenService, cfg.IsProduction())
	ordersHandler := handlers.NewOrdersHandler(dbClient, uploader)
	stampsHandler := handlers.NewStampsHandler(dbClient, uploader)
	chatHandler := handlers.NewChatHandler(dbClient)
	imagesHandler := handlers.NewImagesHandler(replicateClient)

	// Setup router
	router := gin.Default()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	// Health check and metrics (no auth)
	router.GET("/health", handlers.HealthHandler)
	router.GET("/metrics", metrics.Handler())

	// Uploaded images are served straight from the public root.
	router.Static("/uploads", filepath.Join(cfg.PublicDir, "uploads"))

	api := router.Group("/api")

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", middleware.SessionGuard(tokenService), authHandler.Me)

	// Session-scoped routes
	protected := api.Group("")
	protected.Use(middleware.SessionGuard(tokenService))

	protected.POST("/orders/save", ordersHandler.Save)
	protected.GET("/orders/get", ordersHandler.Get)
	protected.GET("/orders/list", ordersHandler.List)

	protected.POST("/stamps/save", stampsHandler.Save)
	protected.GET("/stamps/list", stampsHandler.List)
	protected.DELETE("/stamps/delete", stampsHandler.Delete)

	protected.POST("/chat/send", chatHandler.Send)
	protected.GET("/chat/list", chatHandler.List)

	// Image utilities
	api.GET("/proxy-image", imagesHandler.ProxyImage)
	api.POST("/remove-bg", imagesHandler.RemoveBackground)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
