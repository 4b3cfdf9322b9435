package services

import (
	"github.com/google/uuid"
	"github.com/phishcatcher/phishcatcher-backend/internal/database"
)

// UserStats are the dashboard counters for one user.
type UserStats struct {
	TotalScans       int `json:"totalScans"`
	SafeScans        int `json:"safeScans"`
	ThreatsDetected  int `json:"threatsDetected"`
	BreachedAccounts int `json:"breachedAccounts"`
}

// GetUserStats computes per-user scan counters with independent owner-filtered
// counts. safeScans counts threat_level = 'safe' only ("low" is excluded).
// threatsDetected counts email-type scans regardless of threat level, a
// placeholder carried over from the feed's early development.
func GetUserStats(userID uuid.UUID) (*UserStats, error) {
	stats := &UserStats{}

	err := database.PostgresDB.QueryRow(`
		SELECT COUNT(*) FROM scans WHERE user_id = $1
	`, userID).Scan(&stats.TotalScans)
	if err != nil {
		return nil, err
	}

	err = database.PostgresDB.QueryRow(`
		SELECT COUNT(*) FROM scans WHERE user_id = $1 AND threat_level = 'safe'
	`, userID).Scan(&stats.SafeScans)
	if err != nil {
		return nil, err
	}

	err = database.PostgresDB.QueryRow(`
		SELECT COUNT(*) FROM scans WHERE user_id = $1 AND type = 'email'
	`, userID).Scan(&stats.ThreatsDetected)
	if err != nil {
		return nil, err
	}

	err = database.PostgresDB.QueryRow(`
		SELECT COUNT(*) FROM scans WHERE user_id = $1 AND type = 'breach'
	`, userID).Scan(&stats.BreachedAccounts)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
