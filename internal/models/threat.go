package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Threat is a curated threat-intelligence advisory. Independent of per-user
// scans; read-only from the dashboard's perspective.
type Threat struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"` // phishing, malware, breach, etc.
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Severity    string          `json:"severity"`
	Source      string          `json:"source,omitempty"` // PhishTank, HaveIBeenPwned, etc.
	Indicators  json.RawMessage `json:"indicators,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
