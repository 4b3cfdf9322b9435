package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/phishcatcher/phishcatcher-backend/internal/handlers"
	"github.com/phishcatcher/phishcatcher-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux) {
	// Public auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/auth/user", handlers.GetCurrentUser)
		r.Post("/api/auth/logout", handlers.Logout)

		r.Get("/api/dashboard/stats", handlers.GetDashboardStats)

		r.Post("/api/scans/email", handlers.ScanEmail)
		r.Post("/api/scans/url", handlers.ScanURL)
		r.Post("/api/scans/file", handlers.ScanFile)
		r.Post("/api/scans/breach", handlers.ScanBreach)
		r.Get("/api/scans", handlers.GetScans)

		r.Get("/api/threats", handlers.GetThreats)
		r.Get("/api/breaches", handlers.GetBreaches)

		r.Post("/api/reports", handlers.CreateReport)
		r.Get("/api/reports", handlers.GetReports)

		// WebSocket endpoint for the live threat feed
		r.Get("/ws/threats", handlers.ThreatFeedWebSocket)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/api/admin/threats", handlers.CreateThreat)
			r.Post("/api/admin/breaches", handlers.CreateBreach)
		})
	})
}
