// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/paige-inner-circle/legacy-backend/internal/api/handlers"
	"github.com/paige-inner-circle/legacy-backend/internal/api/middleware"
	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/cron"
	"github.com/paige-inner-circle/legacy-backend/internal/db"
	"github.com/paige-inner-circle/legacy-backend/internal/email"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/seed"
	"github.com/paige-inner-circle/legacy-backend/internal/service"
	"github.com/paige-inner-circle/legacy-backend/internal/socket"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL (pgxpool + sqlx)
	// ============================================
	pg, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer pg.Close()

	sqlxDB, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to open sqlx DB: %v", err)
	}
	defer sqlxDB.Close()

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(pg.Pool, sqlxDB)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing without cache)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis cache enabled")
		}
	}

	// ============================================
	// Initialize Email Service (optional)
	// ============================================
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
		log.Println("📧 Email service initialized")
	} else {
		log.Println("⚠️  Email not configured (SMTP_HOST not set)")
	}

	// ============================================
	// Initialize WebSocket Hub (admin dashboard feed)
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Redis:       redisDB,
		EmailSvc:    emailSvc,
		Broadcaster: broadcaster,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(services, repos)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.Default()
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Generated pass assets (QR codes, card images, PDFs)
	r.Static("/static", cfg.StaticDir)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"database":   "connected",
			"cache":      getCacheStatus(redisDB),
			"websocket":  "active",
			"ws_clients": hub.ClientCount(),
			"email":      getEmailStatus(emailSvc),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/request-access", h.Auth.RequestAccess)
			auth.POST("/admin/login", h.Auth.AdminLogin)
			auth.GET("/status", middleware.OptionalAuthMiddleware(services.Auth), h.Auth.Status)
		}

		// Public event teaser for the landing page
		api.GET("/events/teaser", h.Event.Teaser)

		// Payment methods and pass-token lookups work pre-login: the pass
		// token itself is the credential.
		api.GET("/payment/methods", h.Payment.Methods)
		api.POST("/payment/contact", h.Payment.SubmitContact)
		api.GET("/payment/status/:token", h.Payment.Status)

		api.GET("/pass/preview/:token", h.Pass.Preview)
		api.GET("/pass/status/:token", h.Pass.Status)
		api.GET("/pass/full/:token", h.Pass.Get)
		api.GET("/pass/full/:token/pdf", h.Pass.DownloadPDF)
		api.GET("/pass/full/:token/wallet", h.Pass.Wallet)

		// Door staff scan flow: the QR encodes this URL, no login involved
		api.GET("/pass/verify/:token", h.Pass.Verify)

		api.GET("/gifts/preview/:tier", h.Gift.Preview)
		api.GET("/gifts/categories/:tier", h.Gift.Categories)
		api.GET("/gifts/highlights/:tier", h.Gift.Highlights)
		api.GET("/gifts/compare", h.Gift.Compare)
		api.GET("/gifts/full/:token", h.Gift.FullList)

		// WebSocket route (admin dashboard feed; JWT checked on upgrade)
		api.GET("/ws", wsHandler.HandleWebSocket)

		// ============================================
		// Member routes (require auth)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			protected.GET("/auth/me", h.Auth.Me)
			protected.POST("/auth/logout", h.Auth.Logout)

			protected.GET("/events/current", h.Event.Current)
			protected.GET("/events/detail/:id", h.Event.Get)
			protected.GET("/events/detail/:id/schedule", h.Event.Schedule)
			protected.GET("/events/detail/:id/amenities", h.Event.Amenities)

			protected.POST("/rsvp", h.RSVP.Respond)
			protected.GET("/rsvp/status", h.RSVP.Status)

			protected.GET("/gifts/my-tier", h.Gift.MyTier)
			protected.GET("/gifts/my-preview", h.Gift.MyPreview)

			protected.GET("/memories", h.Memory.Mine)
			protected.GET("/memories/event/:eventId", h.Memory.ForEvent)
		}

		// ============================================
		// Admin routes
		// ============================================
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(services.Auth), middleware.AdminMiddleware())
		{
			admin.GET("/stats/dashboard", h.Admin.Dashboard)
			admin.GET("/stats/tiers/:eventId", h.Admin.TierBreakdown)
			admin.GET("/stats/rsvps/:eventId", h.Admin.RSVPSummary)

			admin.GET("/rsvps/:eventId", h.RSVP.ListForEvent)

			admin.GET("/members", h.Admin.ListMembers)
			admin.POST("/members", h.Admin.CreateMember)
			admin.GET("/members/:id", h.Admin.GetMember)
			admin.PUT("/members/:id", h.Admin.UpdateMember)
			admin.PATCH("/members/:id/active", h.Admin.SetMemberActive)
			admin.DELETE("/members/:id", h.Admin.DeleteMember)

			admin.GET("/events", h.Event.List)
			admin.POST("/events", h.Event.Create)
			admin.GET("/events/:id", h.Event.Get)
			admin.PUT("/events/:id", h.Event.Update)
			admin.PATCH("/events/:id/active", h.Event.SetActive)

			admin.GET("/payments", h.Payment.List)
			admin.GET("/payments/pending", h.Payment.Pending)
			admin.POST("/payments/:id/verify", h.Payment.Verify)
			admin.POST("/payments/:id/fail", h.Payment.MarkFailed)

			admin.GET("/pass/:token/verification-qr", h.Pass.VerificationQR)
			admin.POST("/pass/:token/regenerate-pdf", h.Pass.RegeneratePDF)
			admin.POST("/pass/:token/deactivate", h.Pass.Deactivate)
			admin.POST("/pass/:token/reactivate", h.Pass.Reactivate)

			admin.POST("/memories/publish/:eventId", h.Memory.Publish)
			admin.GET("/memories/event/:eventId", h.Memory.ListForEvent)
			admin.PUT("/memories/:id", h.Memory.Update)
			admin.DELETE("/memories/:id", h.Memory.Delete)
		}
	}

	// ============================================
	// HTTP Server with graceful shutdown
	// ============================================
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}

func getEmailStatus(emailSvc *email.Service) string {
	if emailSvc != nil {
		return "configured"
	}
	return "disabled"
}
