package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community_help/internal/config"
	"community_help/internal/handler"
	"community_help/internal/middleware"
	"community_help/internal/repository"
	"community_help/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	sessionSecret := os.Getenv("SESSION_SECRET_KEY")
	if sessionSecret == "" {
		sessionSecret = "community_help_secret_key_2024"
		log.Println("SESSION_SECRET_KEY not set, using built-in default (do not use in production)")
	}

	// Shared access code any volunteer can use to enter the admin panel.
	adminAccessCode := os.Getenv("ADMIN_ACCESS_CODE")
	if adminAccessCode == "" {
		adminAccessCode = "UNPAID"
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "5000" // Default port
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Repositories ---
	requestRepo := repository.NewRequestRepository(dbPool)
	volunteerRepo := repository.NewVolunteerRepository(dbPool)

	// --- Initialize Services ---
	requestService := service.NewRequestService(requestRepo)
	volunteerService := service.NewVolunteerService(volunteerRepo, requestRepo)

	// --- Initialize Handlers ---
	requestHandler := handler.NewRequestHandler(requestService, volunteerService)
	volunteerHandler := handler.NewVolunteerHandler(volunteerService)
	adminHandler := handler.NewAdminHandler(requestService, volunteerService, adminAccessCode)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")

	// Cookie-backed sessions carry the volunteer/admin login state and flashes
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions(middleware.SessionName, store))

	// --- Register Routes ---
	requestHandler.RegisterRequestRoutes(router)
	volunteerHandler.RegisterVolunteerRoutes(router)
	adminHandler.RegisterAdminRoutes(router, middleware.AdminRequired())

	// Health check endpoint (not part of the page flows, but good practice)
	router.GET("/health", func(c *gin.Context) {
		// Check DB connection
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Community Help server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
