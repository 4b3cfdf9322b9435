package handlers

import (
	"log"
	"net/http"

	"github.com/phishcatcher/phishcatcher-backend/internal/services"
)

// GetBreaches returns recorded breaches for an email address
// (GET /api/breaches?email=...). Reference data, not the random breach scan.
func GetBreaches(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Email is required"})
		return
	}

	breaches, err := services.GetBreachesByEmail(email)
	if err != nil {
		log.Printf("[GetBreaches] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to fetch breaches"})
		return
	}

	writeJSON(w, http.StatusOK, breaches)
}
