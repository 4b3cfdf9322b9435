package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phishcatcher/phishcatcher-backend/internal/database"
	"github.com/phishcatcher/phishcatcher-backend/internal/models"
	"github.com/stretchr/testify/require"
)

// setupMockDB swaps database.PostgresDB for a sqlmock instance for the
// duration of one test. Tests using it mutate the package global and must not
// run in parallel.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := database.PostgresDB
	database.PostgresDB = db
	t.Cleanup(func() {
		database.PostgresDB = prev
		db.Close()
	})
	return mock
}

func scanResultRows(scanID, userID uuid.UUID, scanType, target, status, level, score string, ts time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(strings.Split(scanColumns, ", ")).
		AddRow(scanID.String(), userID.String(), scanType, target, status, level, score, nil, nil, ts, ts)
}

func TestSubmitScanCompletesWithResult(t *testing.T) {
	mock := setupMockDB(t)

	scanID, userID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO scans`).
		WithArgs(userID, models.ScanTypeURL, "http://example.com", nil).
		WillReturnRows(scanResultRows(scanID, userID, "url", "http://example.com", "scanning", "safe", "0.00", now))

	// Risk score is persisted with two-decimal precision.
	mock.ExpectQuery(`UPDATE scans SET status = 'completed'`).
		WithArgs(scanID, "low", "30.00", sqlmock.AnyArg()).
		WillReturnRows(scanResultRows(scanID, userID, "url", "http://example.com", "completed", "low", "30.00", now))

	scan, err := SubmitScan(userID, models.ScanTypeURL, "http://example.com", nil, func() AnalysisResult {
		return AnalysisResult{ThreatLevel: "low", RiskScore: 30, Findings: map[string]interface{}{"hasHttps": false}}
	})
	require.NoError(t, err)
	require.Equal(t, "completed", scan.Status)
	require.Equal(t, "30.00", scan.RiskScore)
	require.Equal(t, userID, scan.UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitScanMarksRowFailedWhenCompletionFails(t *testing.T) {
	mock := setupMockDB(t)

	scanID, userID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO scans`).
		WithArgs(userID, models.ScanTypeURL, "http://example.com", nil).
		WillReturnRows(scanResultRows(scanID, userID, "url", "http://example.com", "scanning", "safe", "0.00", now))

	mock.ExpectQuery(`UPDATE scans SET status = 'completed'`).
		WillReturnError(errors.New("connection reset by peer"))

	// The row must end up 'failed', never stranded in 'scanning'.
	mock.ExpectExec(`UPDATE scans SET status = 'failed'`).
		WithArgs(scanID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := SubmitScan(userID, models.ScanTypeURL, "http://example.com", nil, func() AnalysisResult {
		return AnalysisResult{ThreatLevel: "low", RiskScore: 30}
	})
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserScansIsOwnerScopedAndNewestFirst(t *testing.T) {
	mock := setupMockDB(t)

	userID := uuid.New()
	newer, older := uuid.New(), uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(strings.Split(scanColumns, ", ")).
		AddRow(newer.String(), userID.String(), "url", "https://b.example", "completed", "safe", "0.00", nil, nil, now, now).
		AddRow(older.String(), userID.String(), "email", "hello", "completed", "safe", "0.00", nil, nil, now.Add(-time.Hour), now.Add(-time.Hour))

	// The query itself carries the ownership filter and the ordering.
	mock.ExpectQuery(`SELECT (.+) FROM scans WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(userID, 10).
		WillReturnRows(rows)

	scans, err := GetUserScans(userID, 10)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	require.Equal(t, newer, scans[0].ID)
	require.Equal(t, older, scans[1].ID)
	for _, s := range scans {
		require.Equal(t, userID, s.UserID)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}
