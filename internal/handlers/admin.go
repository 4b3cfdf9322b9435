package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/phishcatcher/phishcatcher-backend/internal/services"
)

// CreateThreatRequest is the JSON body for POST /api/admin/threats
type CreateThreatRequest struct {
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Severity    string                 `json:"severity"`
	Source      string                 `json:"source,omitempty"`
	Indicators  map[string]interface{} `json:"indicators,omitempty"`
}

// CreateThreat publishes a new threat advisory (admin only). The advisory is
// persisted and pushed to connected dashboard clients over the live feed.
func CreateThreat(w http.ResponseWriter, r *http.Request) {
	var req CreateThreatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Type == "" || req.Title == "" || req.Severity == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Type, title, and severity are required"})
		return
	}

	threat, err := services.CreateThreat(req.Type, req.Title, req.Description, req.Severity, req.Source, req.Indicators)
	if err != nil {
		log.Printf("[CreateThreat] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to create threat"})
		return
	}

	// Push to the live feed; persistence already succeeded, so feed errors are
	// only logged.
	if err := services.PublishThreatEvent(r.Context(), services.ThreatEvent{
		Type:   "threat_published",
		Threat: threat,
	}); err != nil {
		log.Printf("[CreateThreat] failed to publish feed event: %v", err)
	}

	writeJSON(w, http.StatusOK, threat)
}

// CreateBreachRequest is the JSON body for POST /api/admin/breaches
type CreateBreachRequest struct {
	Email           string                 `json:"email"`
	BreachName      string                 `json:"breachName"`
	BreachDate      string                 `json:"breachDate,omitempty"` // YYYY-MM-DD
	CompromisedData map[string]interface{} `json:"compromisedData,omitempty"`
	Source          string                 `json:"source,omitempty"`
	Severity        string                 `json:"severity,omitempty"`
}

// CreateBreach appends one breach reference record (admin only).
func CreateBreach(w http.ResponseWriter, r *http.Request) {
	var req CreateBreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Email == "" || req.BreachName == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Email and breach name are required"})
		return
	}

	var breachDate *time.Time
	if req.BreachDate != "" {
		t, err := time.Parse("2006-01-02", req.BreachDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Breach date must be YYYY-MM-DD"})
			return
		}
		breachDate = &t
	}

	breach, err := services.CreateBreach(req.Email, req.BreachName, breachDate, req.CompromisedData, req.Source, req.Severity)
	if err != nil {
		log.Printf("[CreateBreach] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to create breach"})
		return
	}

	writeJSON(w, http.StatusOK, breach)
}
