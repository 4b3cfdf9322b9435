package handlers

import (
	"log"
	"net/http"

	"github.com/phishcatcher/phishcatcher-backend/internal/middleware"
	"github.com/phishcatcher/phishcatcher-backend/internal/services"
)

// GetDashboardStats returns the caller's scan counters (GET /api/dashboard/stats).
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	stats, err := services.GetUserStats(userID)
	if err != nil {
		log.Printf("[GetDashboardStats] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to fetch dashboard stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
