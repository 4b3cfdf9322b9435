package services

import (
	"encoding/json"
	"time"

	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
)

const breachColumns = `id, email, breach_name, breach_date, compromised_data, source, severity, is_verified, created_at`

func breachRow(row interface{ Scan(...interface{}) error }) (*models.Breach, error) {
	var b models.Breach
	var breachDate *time.Time
	var compromised []byte
	err := row.Scan(&b.ID, &b.Email, &b.BreachName, &breachDate, &compromised,
		&b.Source, &b.Severity, &b.IsVerified, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.BreachDate = breachDate
	b.CompromisedData = compromised
	return &b, nil
}

// CreateBreach appends one breach reference record. Rows are never updated or
// deleted afterwards.
func CreateBreach(email, breachName string, breachDate *time.Time, compromisedData map[string]interface{}, source, severity string) (*models.Breach, error) {
	var compromisedJSON []byte
	if compromisedData != nil {
		var err error
		compromisedJSON, err = json.Marshal(compromisedData)
		if err != nil {
			return nil, err
		}
	}
	if source == "" {
		source = "HaveIBeenPwned"
	}
	if severity == "" {
		severity = models.ThreatLevelMedium
	}

	row := database.PostgresDB.QueryRow(`
		INSERT INTO breaches (id, email, breach_name, breach_date, compromised_data, source, severity, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW())
		RETURNING `+breachColumns,
		email, breachName, breachDate, nullableJSON(compromisedJSON), source, severity)
	return breachRow(row)
}

// GetBreachesByEmail returns all recorded breaches for an address, newest first.
func GetBreachesByEmail(email string) ([]models.Breach, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT `+breachColumns+`
		FROM breaches
		WHERE email = $1
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breaches := make([]models.Breach, 0)
	for rows.Next() {
		breach, err := breachRow(rows)
		if err != nil {
			return nil, err
		}
		breaches = append(breaches, *breach)
	}
	return breaches, rows.Err()
}
