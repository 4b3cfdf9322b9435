package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/phishcatcher/phishcatcher-backend/internal/config"
	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/handlers"
	"github.com/phishcatcher/phishcatcher-backend/internal/middleware"
	"github.com/phishcatcher/phishcatcher-backend/internal/routes"
	"github.com/phishcatcher/phishcatcher-backend/internal/services"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (report storage)
	log.Printf("Connecting to MongoDB...")
	if err := database.ConnectMongo(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo()

	// Ensure MongoDB indexes for reports
	if err := services.EnsureReportIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB report indexes: %v", err)
	} else {
		log.Println("✅ MongoDB report indexes ensured")
	}

	// Initialize Cloudinary (optional scan file archive)
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Scanned files will not be archived")
		} else {
			log.Println("✅ Cloudinary scan archive initialized")
		}
	} else {
		log.Println("Cloudinary credentials not found. Scanned files will not be archived")
	}

	// Start the Redis subscriber feeding the threat WebSocket
	services.StartThreatFeedSubscriber(context.Background())

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  GET  /api/auth/user")
	log.Println("  POST /api/auth/logout")
	log.Println("  GET  /api/dashboard/stats")
	log.Println("  POST /api/scans/email")
	log.Println("  POST /api/scans/url")
	log.Println("  POST /api/scans/file")
	log.Println("  POST /api/scans/breach")
	log.Println("  GET  /api/scans")
	log.Println("  GET  /api/threats")
	log.Println("  GET  /api/breaches")
	log.Println("  POST /api/reports")
	log.Println("  GET  /api/reports")
	log.Println("  GET  /ws/threats")
	log.Println("  POST /api/admin/threats")
	log.Println("  POST /api/admin/breaches")

	log.Printf("🚀 PhishCatcher backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
