package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Breach records one email address appearing in one named historical breach.
// Append-only reference data, independent of the per-user breach scans.
type Breach struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	BreachName      string          `json:"breachName"`
	BreachDate      *time.Time      `json:"breachDate,omitempty"`
	CompromisedData json.RawMessage `json:"compromisedData,omitempty"`
	Source          string          `json:"source"`
	Severity        string          `json:"severity"`
	IsVerified      bool            `json:"isVerified"`
	CreatedAt       time.Time       `json:"createdAt"`
}
