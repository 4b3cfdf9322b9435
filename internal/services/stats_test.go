package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func countRow(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestGetUserStatsCountersAreOwnerFiltered(t *testing.T) {
	mock := setupMockDB(t)

	userID := uuid.New()

	// Four independent counts, each filtered by the owner. safeScans counts
	// threat_level = 'safe' only, threatsDetected counts email-type scans,
	// breachedAccounts counts breach-type scans.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scans WHERE user_id = \$1$`).
		WithArgs(userID).
		WillReturnRows(countRow(7))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scans WHERE user_id = \$1 AND threat_level = 'safe'`).
		WithArgs(userID).
		WillReturnRows(countRow(4))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scans WHERE user_id = \$1 AND type = 'email'`).
		WithArgs(userID).
		WillReturnRows(countRow(2))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scans WHERE user_id = \$1 AND type = 'breach'`).
		WithArgs(userID).
		WillReturnRows(countRow(1))

	stats, err := GetUserStats(userID)
	require.NoError(t, err)
	require.Equal(t, 7, stats.TotalScans)
	require.Equal(t, 4, stats.SafeScans)
	require.Equal(t, 2, stats.ThreatsDetected)
	require.Equal(t, 1, stats.BreachedAccounts)

	require.NoError(t, mock.ExpectationsWereMet())
}
