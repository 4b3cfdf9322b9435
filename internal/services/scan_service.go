package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
)

const scanColumns = `id, user_id, type, target, status, threat_level, risk_score, findings, metadata, created_at, updated_at`

func scanRow(row interface{ Scan(...interface{}) error }) (*models.Scan, error) {
	var s models.Scan
	var findings, metadata []byte
	err := row.Scan(&s.ID, &s.UserID, &s.Type, &s.Target, &s.Status, &s.ThreatLevel,
		&s.RiskScore, &findings, &metadata, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Findings = findings
	s.Metadata = metadata
	return &s, nil
}

// CreateScan inserts a new scan row in "scanning" state and returns it.
func CreateScan(userID uuid.UUID, scanType, target string, metadata map[string]interface{}) (*models.Scan, error) {
	var metadataJSON []byte
	if metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return nil, err
		}
	}

	row := database.PostgresDB.QueryRow(`
		INSERT INTO scans (id, user_id, type, target, status, metadata, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, 'scanning', $4, NOW(), NOW())
		RETURNING `+scanColumns, userID, scanType, target, nullableJSON(metadataJSON))
	return scanRow(row)
}

// CompleteScan attaches the heuristic result to a scan and marks it completed.
func CompleteScan(scanID uuid.UUID, result AnalysisResult) (*models.Scan, error) {
	findingsJSON, err := json.Marshal(result.Findings)
	if err != nil {
		return nil, err
	}

	row := database.PostgresDB.QueryRow(`
		UPDATE scans
		SET status = 'completed', threat_level = $2, risk_score = $3, findings = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+scanColumns,
		scanID, result.ThreatLevel, strconv.FormatFloat(result.RiskScore, 'f', 2, 64), findingsJSON)
	return scanRow(row)
}

// FailScan transitions a scan to its terminal "failed" state. Best effort:
// used when the heuristic or the completing update errored, so the row is not
// left in "scanning" forever.
func FailScan(scanID uuid.UUID) {
	_, err := database.PostgresDB.Exec(`
		UPDATE scans SET status = 'failed', updated_at = NOW() WHERE id = $1
	`, scanID)
	if err != nil {
		log.Printf("[FailScan] failed to mark scan %s as failed: %v", scanID, err)
	}
}

// SubmitScan runs the full scan lifecycle: create the row in "scanning" state,
// run the heuristic synchronously, then attach the results and mark the row
// completed. On any failure after creation the row is marked "failed".
func SubmitScan(userID uuid.UUID, scanType, target string, metadata map[string]interface{}, analyze func() AnalysisResult) (*models.Scan, error) {
	scan, err := CreateScan(userID, scanType, target, metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan: %w", err)
	}

	result := analyze()

	updated, err := CompleteScan(scan.ID, result)
	if err != nil {
		FailScan(scan.ID)
		return nil, fmt.Errorf("failed to complete scan: %w", err)
	}

	return updated, nil
}

// GetScan returns a single scan by ID, or nil when not found.
func GetScan(scanID uuid.UUID) (*models.Scan, error) {
	row := database.PostgresDB.QueryRow(`SELECT `+scanColumns+` FROM scans WHERE id = $1`, scanID)
	scan, err := scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return scan, err
}

// GetUserScans returns the user's scans, newest first. Only rows owned by
// userID are ever returned.
func GetUserScans(userID uuid.UUID, limit int) ([]models.Scan, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := database.PostgresDB.Query(`
		SELECT `+scanColumns+`
		FROM scans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scans := make([]models.Scan, 0)
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *scan)
	}
	return scans, rows.Err()
}

// nullableJSON returns nil for empty payloads so JSONB columns stay NULL.
func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
