package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"

	"github.com/phishcatcher/phishcatcher-backend/internal/config"
	"github.com/phishcatcher/phishcatcher-backend/internal/middleware"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
	"github.com/phishcatcher/phishcatcher-backend/internal/services"
)

// scanner is shared by all scan handlers; the breach heuristic samples from
// its random source.
var scanner = services.NewScanner()

// cloudinaryService archives scanned files when configured; nil otherwise.
var cloudinaryService *services.CloudinaryService

// maxUploadSize caps file scan submissions at 10 MiB.
const maxUploadSize = 10 << 20

// allowedFileTypes is the upload extension allow-list. Checked before any scan
// row is created.
var allowedFileTypes = regexp.MustCompile(`(?i)\.(pdf|doc|docx|txt|zip|exe|js|html|htm|php)$`)

// InitCloudinaryService wires the optional scan file archive.
func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// ErrorResponse is the JSON envelope for scan failures.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ScanEmailRequest is the JSON body for POST /api/scans/email
type ScanEmailRequest struct {
	EmailContent string `json:"emailContent"`
	EmailHeaders string `json:"emailHeaders,omitempty"`
}

// ScanEmail analyzes free-text email content for phishing indicators.
func ScanEmail(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req ScanEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.EmailContent == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Email content is required"})
		return
	}

	var metadata map[string]interface{}
	if req.EmailHeaders != "" {
		metadata = map[string]interface{}{"headers": req.EmailHeaders}
	}

	scan, err := services.SubmitScan(userID, models.ScanTypeEmail, req.EmailContent, metadata, func() services.AnalysisResult {
		return scanner.AnalyzeEmail(req.EmailContent)
	})
	if err != nil {
		log.Printf("[ScanEmail] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to scan email"})
		return
	}

	writeJSON(w, http.StatusOK, scan)
}

// ScanURLRequest is the JSON body for POST /api/scans/url
type ScanURLRequest struct {
	URL string `json:"url"`
}

// ScanURL analyzes a URL string for malicious indicators.
func ScanURL(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req ScanURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "URL is required"})
		return
	}

	scan, err := services.SubmitScan(userID, models.ScanTypeURL, req.URL, nil, func() services.AnalysisResult {
		return scanner.AnalyzeURL(req.URL)
	})
	if err != nil {
		log.Printf("[ScanURL] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to scan URL"})
		return
	}

	writeJSON(w, http.StatusOK, scan)
}

// ScanFile analyzes an uploaded file. Size and extension are validated before
// any scan row is created.
func ScanFile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "File exceeds the 10MB limit or form is invalid"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "File is required"})
		return
	}
	defer file.Close()

	if !allowedFileTypes.MatchString(fileHeader.Filename) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Invalid file type"})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Failed to read file"})
		return
	}

	metadata := map[string]interface{}{
		"originalName": fileHeader.Filename,
		"size":         fileHeader.Size,
		"mimetype":     fileHeader.Header.Get("Content-Type"),
	}

	// Archive a copy when the archive is configured. Scanning never depends on
	// the archive succeeding.
	if cloudinaryService != nil {
		if url, err := cloudinaryService.UploadBytes(r.Context(), content, "phishcatcher/scans"); err != nil {
			log.Printf("[ScanFile] failed to archive file: %v", err)
		} else {
			metadata["archiveUrl"] = url
		}
	}

	scan, err := services.SubmitScan(userID, models.ScanTypeFile, fileHeader.Filename, metadata, func() services.AnalysisResult {
		return scanner.AnalyzeFile(fileHeader.Filename, content)
	})
	if err != nil {
		log.Printf("[ScanFile] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to scan file"})
		return
	}

	writeJSON(w, http.StatusOK, scan)
}

// ScanBreachRequest is the JSON body for POST /api/scans/breach
type ScanBreachRequest struct {
	Email string `json:"email"`
}

// ScanBreach checks an email address against known historical breaches.
func ScanBreach(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req ScanBreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: "Email is required"})
		return
	}

	scan, err := services.SubmitScan(userID, models.ScanTypeBreach, req.Email, nil, func() services.AnalysisResult {
		return scanner.CheckBreaches(req.Email)
	})
	if err != nil {
		log.Printf("[ScanBreach] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to check breach"})
		return
	}

	writeJSON(w, http.StatusOK, scan)
}

// GetScans returns the caller's scans, newest first (GET /api/scans?limit=N).
func GetScans(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	scans, err := services.GetUserScans(userID, limit)
	if err != nil {
		log.Printf("[GetScans] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Failed to fetch scans"})
		return
	}

	writeJSON(w, http.StatusOK, scans)
}
