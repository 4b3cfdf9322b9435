package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Scan types
const (
	ScanTypeEmail  = "email"
	ScanTypeURL    = "url"
	ScanTypeFile   = "file"
	ScanTypeBreach = "breach"
)

// Scan statuses
const (
	ScanStatusPending   = "pending"
	ScanStatusScanning  = "scanning"
	ScanStatusCompleted = "completed"
	ScanStatusFailed    = "failed"
)

// Threat levels, ordered from least to most severe. "critical" exists in the
// taxonomy but no heuristic currently emits it.
const (
	ThreatLevelSafe     = "safe"
	ThreatLevelLow      = "low"
	ThreatLevelMedium   = "medium"
	ThreatLevelHigh     = "high"
	ThreatLevelCritical = "critical"
)

// Scan is one user-submitted analysis request and its eventual result.
// Created in "scanning" state, mutated exactly once to "completed" (or "failed")
// with results attached; never deleted. Owned exclusively by its creating user.
type Scan struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Type        string          `json:"type"`   // email, url, file, breach
	Target      string          `json:"target"` // email content, URL, filename, email address
	Status      string          `json:"status"`
	ThreatLevel string          `json:"threatLevel"`
	RiskScore   string          `json:"riskScore"` // decimal with two-decimal precision, e.g. "60.00"
	Findings    json.RawMessage `json:"findings,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
