package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/phishcatcher/phishcatcher-backend/internal/middleware"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
	"github.com/phishcatcher/phishcatcher-backend/internal/services"
)

// CreateReportRequest is the JSON body for POST /api/reports. The data payload
// is persisted verbatim; aggregation is the caller's responsibility.
type CreateReportRequest struct {
	Title     string                 `json:"title"`
	Type      string                 `json:"type"`
	DateRange map[string]interface{} `json:"dateRange,omitempty"`
	Data      map[string]interface{} `json:"data"`
	Format    string                 `json:"format,omitempty"`
}

// CreateReport persists a user-requested export (POST /api/reports).
func CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Title == "" || req.Type == "" || req.Data == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Title, type, and data are required"})
		return
	}

	report, err := services.CreateReport(r.Context(), models.Report{
		UserID:    userID.String(),
		Title:     req.Title,
		Type:      req.Type,
		DateRange: req.DateRange,
		Data:      req.Data,
		Format:    req.Format,
	})
	if err != nil {
		log.Printf("[CreateReport] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to create report"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// GetReports returns the caller's reports, newest first (GET /api/reports).
func GetReports(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	reports, err := services.GetUserReports(r.Context(), userID.String())
	if err != nil {
		log.Printf("[GetReports] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to fetch reports"})
		return
	}

	writeJSON(w, http.StatusOK, reports)
}
