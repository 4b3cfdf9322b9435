package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
)

const userColumns = `id, email, password_hash, first_name, last_name, profile_image_url, role, created_at, updated_at`

func userRow(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	var firstName, lastName, imageURL sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &firstName, &lastName,
		&imageURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.FirstName = firstName.String
	u.LastName = lastName.String
	u.ProfileImageURL = imageURL.String
	return &u, nil
}

// GetUserByID retrieves a user by ID. Returns nil when not found.
func GetUserByID(userID uuid.UUID) (*models.User, error) {
	row := database.PostgresDB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	user, err := userRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func GetUserByEmail(email string) (*models.User, error) {
	row := database.PostgresDB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := userRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// CreateUser creates an account on first signup. Users are never deleted here.
func CreateUser(email, passwordHash, firstName, lastName, profileImageURL string) (*models.User, error) {
	row := database.PostgresDB.QueryRow(`
		INSERT INTO users (id, email, password_hash, first_name, last_name, profile_image_url, role, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, 'user', NOW(), NOW())
		RETURNING `+userColumns,
		email, passwordHash, firstName, lastName, profileImageURL)
	return userRow(row)
}

// RefreshUserProfile updates the mutable profile fields on login. Empty values
// leave the stored field untouched; updated_at is always refreshed.
func RefreshUserProfile(userID uuid.UUID, firstName, lastName, profileImageURL string) (*models.User, error) {
	row := database.PostgresDB.QueryRow(`
		UPDATE users
		SET first_name = COALESCE(NULLIF($2, ''), first_name),
			last_name = COALESCE(NULLIF($3, ''), last_name),
			profile_image_url = COALESCE(NULLIF($4, ''), profile_image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		userID, firstName, lastName, profileImageURL)
	return userRow(row)
}
