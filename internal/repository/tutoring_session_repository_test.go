package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/stemspark-api/internal/models"
)

func TestTutoringSessionRepositoryFindCompleted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTutoringSessionRepository(db)
	scheduled := time.Date(2024, 5, 2, 15, 0, 0, 0, time.UTC)
	columns := []string{"id", "intern_id", "subject", "status", "scheduled_time", "completed_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM tutoring_sessions")).
		WithArgs("session-1", "intern-1", models.TutoringSessionCompleted).
		WillReturnRows(sqlmock.NewRows(columns).AddRow("session-1", "intern-1", "Algebra", "completed", scheduled, nil))

	session, err := repo.FindCompleted(context.Background(), "session-1", "intern-1")
	require.NoError(t, err)
	require.Equal(t, "Algebra", session.Subject)
	require.NotNil(t, session.ScheduledTime)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tutoring_sessions")).
		WithArgs("session-2", "intern-1", models.TutoringSessionCompleted).
		WillReturnRows(sqlmock.NewRows(columns))
	_, err = repo.FindCompleted(context.Background(), "session-2", "intern-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
