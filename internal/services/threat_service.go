package services

import (
	"encoding/json"

	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
)

const threatColumns = `id, type, title, description, severity, source, indicators, is_active, created_at, updated_at`

func threatRow(row interface{ Scan(...interface{}) error }) (*models.Threat, error) {
	var t models.Threat
	var description, source []byte
	var indicators []byte
	err := row.Scan(&t.ID, &t.Type, &t.Title, &description, &t.Severity, &source,
		&indicators, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Description = string(description)
	t.Source = string(source)
	t.Indicators = indicators
	return &t, nil
}

// CreateThreat persists a new advisory and returns the stored record.
func CreateThreat(threatType, title, description, severity, source string, indicators map[string]interface{}) (*models.Threat, error) {
	var indicatorsJSON []byte
	if indicators != nil {
		var err error
		indicatorsJSON, err = json.Marshal(indicators)
		if err != nil {
			return nil, err
		}
	}

	row := database.PostgresDB.QueryRow(`
		INSERT INTO threats (id, type, title, description, severity, source, indicators, is_active, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		RETURNING `+threatColumns,
		threatType, title, description, severity, source, nullableJSON(indicatorsJSON))
	return threatRow(row)
}

// GetActiveThreats returns active advisories, newest first.
func GetActiveThreats(limit int) ([]models.Threat, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := database.PostgresDB.Query(`
		SELECT `+threatColumns+`
		FROM threats
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	threats := make([]models.Threat, 0)
	for rows.Next() {
		threat, err := threatRow(rows)
		if err != nil {
			return nil, err
		}
		threats = append(threats, *threat)
	}
	return threats, rows.Err()
}
