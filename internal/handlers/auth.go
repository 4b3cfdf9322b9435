package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/phishcatcher/phishcatcher-backend/internal/middleware"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
	"github.com/phishcatcher/phishcatcher-backend/internal/services"
	"github.com/phishcatcher/phishcatcher-backend/pkg/utils"
)

// SignupRequest is the JSON body for POST /api/auth/signup
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// SigninRequest is the JSON body for POST /api/auth/signin. Profile fields are
// optional; when present they refresh the stored profile on login.
type SigninRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Signup handles account registration.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Email and password are required"})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Password must be at least 8 characters"})
		return
	}

	existing, err := services.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("[Signup] database error: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "User with this email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to hash password"})
		return
	}

	user, err := services.CreateUser(req.Email, hashedPassword, req.FirstName, req.LastName, req.ProfileImageURL)
	if err != nil {
		log.Printf("[Signup] failed to create user: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create user"})
		return
	}

	token, err := services.CreateSession(user.ID)
	if err != nil {
		log.Printf("[Signup] failed to create session: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create session"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    user,
		Token:   token,
	})
}

// Signin handles login. The stored profile is refreshed on every login.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Email and password are required"})
		return
	}

	user, err := services.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("[Signin] database error: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	user, err = services.RefreshUserProfile(user.ID, req.FirstName, req.LastName, req.ProfileImageURL)
	if err != nil {
		log.Printf("[Signin] failed to refresh profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Database error"})
		return
	}

	token, err := services.CreateSession(user.ID)
	if err != nil {
		log.Printf("[Signin] failed to create session: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create session"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		User:    user,
		Token:   token,
	})
}

// GetCurrentUser returns the authenticated user's record (GET /api/auth/user).
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	user, err := services.GetUserByID(userID)
	if err != nil {
		log.Printf("[GetCurrentUser] database error: %v", err)
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to fetch user"})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout invalidates the current session (POST /api/auth/logout).
func Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearerToken(r.Header.Get("Authorization"))
	if err := services.InvalidateSession(token); err != nil {
		log.Printf("[Logout] failed to invalidate session: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Signed out"})
}
