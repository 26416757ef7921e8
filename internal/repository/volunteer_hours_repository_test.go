package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/stemspark-api/internal/models"
)

var volunteerHoursRowColumns = []string{
	"id", "intern_id", "activity_date", "activity_type", "activity_description", "description", "hours",
	"status", "approved_by", "approved_at", "rejection_reason", "reference_id", "created_at", "updated_at",
}

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestVolunteerHoursRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO volunteer_hours")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.VolunteerHours{
		InternID:            "intern-1",
		ActivityDate:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ActivityType:        "Workshop",
		ActivityDescription: "Robotics workshop",
		Hours:               3,
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, models.VolunteerHoursPending, entry.Status)
	assert.False(t, entry.CreatedAt.IsZero())

	now := time.Now()
	rows := sqlmock.NewRows(volunteerHoursRowColumns).
		AddRow(entry.ID, "intern-1", entry.ActivityDate, "Workshop", "Robotics workshop", nil, 3.0,
			"pending", nil, nil, nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, intern_id, activity_date")).
		WithArgs(entry.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, found.ID)
	assert.Equal(t, 3.0, found.Hours)
	assert.Nil(t, found.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, intern_id, activity_date")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(volunteerHoursRowColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryListByInternEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM volunteer_hours WHERE intern_id = $1 ORDER BY created_at DESC")).
		WithArgs("intern-1").
		WillReturnRows(sqlmock.NewRows(volunteerHoursRowColumns))

	list, err := repo.ListByIntern(context.Background(), "intern-1")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryListPendingJoinsSubmitter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	now := time.Now()
	columns := append(append([]string{}, volunteerHoursRowColumns...), "submitter_email", "submitter_full_name")
	rows := sqlmock.NewRows(columns).
		AddRow("vh-2", "intern-2", now, "Mentoring", "Mentored", nil, 2.0, "pending", nil, nil, nil, nil, now, now, "b@example.com", "Bea").
		AddRow("vh-1", "intern-1", now, "Workshop", "Built robots", nil, 1.5, "pending", nil, nil, nil, nil, now, now, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM volunteer_hours WHERE status = $1")).
		WithArgs(models.VolunteerHoursPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN profiles p ON p.id = vh.intern_id")).
		WithArgs(models.VolunteerHoursPending).
		WillReturnRows(rows)

	page, err := repo.ListPending(context.Background(), models.VolunteerHoursFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, models.DefaultPageSize, page.Limit)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "Bea", page.Items[0].Intern.FullName)
	assert.Equal(t, "intern-2", page.Items[0].Intern.ID)
	assert.Empty(t, page.Items[1].Intern.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryListPendingReportsClampAndTotal(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	columns := append(append([]string{}, volunteerHoursRowColumns...), "submitter_email", "submitter_full_name")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM volunteer_hours")).
		WithArgs(models.VolunteerHoursPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(812))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 500 OFFSET 600")).
		WithArgs(models.VolunteerHoursPending).
		WillReturnRows(sqlmock.NewRows(columns))

	page, err := repo.ListPending(context.Background(), models.VolunteerHoursFilter{Limit: 5000, Offset: 600})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, models.MaxPageSize, page.Limit)
	assert.Equal(t, 600, page.Offset)
	assert.Equal(t, 812, page.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryApproveRecomputesTotal(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	approvedAt := time.Now().UTC()
	rows := sqlmock.NewRows(volunteerHoursRowColumns).
		AddRow("vh-1", "intern-1", approvedAt, "Workshop", "Built robots", nil, 3.0,
			"approved", "admin-1", approvedAt, nil, nil, approvedAt, approvedAt)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE volunteer_hours")).
		WithArgs("vh-1", models.VolunteerHoursApproved, "admin-1", approvedAt, models.VolunteerHoursPending).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE profiles")).
		WithArgs("intern-1", approvedAt).
		WillReturnRows(sqlmock.NewRows([]string{"total_volunteer_hours"}).AddRow(7.5))
	mock.ExpectCommit()

	entry, total, err := repo.Approve(context.Background(), ApproveParams{ID: "vh-1", ApprovedBy: "admin-1", ApprovedAt: approvedAt})
	require.NoError(t, err)
	assert.Equal(t, models.VolunteerHoursApproved, entry.Status)
	require.NotNil(t, entry.ApprovedBy)
	assert.Equal(t, "admin-1", *entry.ApprovedBy)
	assert.Equal(t, 7.5, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryApproveNotPending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE volunteer_hours")).
		WillReturnRows(sqlmock.NewRows(volunteerHoursRowColumns))
	mock.ExpectRollback()

	_, _, err := repo.Approve(context.Background(), ApproveParams{ID: "vh-1", ApprovedBy: "admin-1", ApprovedAt: time.Now()})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryReject(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(volunteerHoursRowColumns).
		AddRow("vh-1", "intern-1", now, "Workshop", "Built robots", nil, 5.0,
			"rejected", nil, nil, "Not verifiable", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE volunteer_hours")).
		WithArgs("vh-1", models.VolunteerHoursRejected, "Not verifiable", now, models.VolunteerHoursPending).
		WillReturnRows(rows)

	entry, err := repo.Reject(context.Background(), RejectParams{ID: "vh-1", Reason: "Not verifiable", RejectedAt: now})
	require.NoError(t, err)
	require.NotNil(t, entry.RejectionReason)
	assert.Equal(t, "Not verifiable", *entry.RejectionReason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryCreateApproved(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO volunteer_hours")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE profiles")).
		WillReturnRows(sqlmock.NewRows([]string{"total_volunteer_hours"}).AddRow(4.0))
	mock.ExpectCommit()

	ref := "session-1"
	entry := &models.VolunteerHours{InternID: "intern-1", ActivityDate: time.Now(), Hours: 1.5, ReferenceID: &ref}
	total, err := repo.CreateApproved(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, 4.0, total)
	assert.Equal(t, models.VolunteerHoursApproved, entry.Status)
	require.NotNil(t, entry.ApprovedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryCreateApprovedDuplicateReference(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO volunteer_hours")).
		WillReturnError(&pq.Error{Code: uniqueViolation})
	mock.ExpectRollback()

	ref := "session-1"
	_, err := repo.CreateApproved(context.Background(), &models.VolunteerHours{InternID: "intern-1", Hours: 1, ReferenceID: &ref})
	require.ErrorIs(t, err, ErrDuplicateReference)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryFindByReferenceScopedToIntern(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE intern_id = $1 AND reference_id = $2")).
		WithArgs("intern-1", "session-1").
		WillReturnRows(sqlmock.NewRows(volunteerHoursRowColumns).
			AddRow("vh-1", "intern-1", now, "Tutoring", "Tutoring session for Algebra", nil, 1.5,
				"approved", nil, now, nil, "session-1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE intern_id = $1 AND reference_id = $2")).
		WithArgs("intern-2", "session-1").
		WillReturnRows(sqlmock.NewRows(volunteerHoursRowColumns))

	found, err := repo.FindByReference(context.Background(), "intern-1", "session-1")
	require.NoError(t, err)
	require.NotNil(t, found.ReferenceID)
	assert.Equal(t, "session-1", *found.ReferenceID)

	_, err = repo.FindByReference(context.Background(), "intern-2", "session-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVolunteerHoursRepositoryOverview(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewVolunteerHoursRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE status = 'pending')")).
		WillReturnRows(sqlmock.NewRows([]string{"pending_entries", "approved_entries", "rejected_entries", "total_approved_hours"}).
			AddRow(2, 5, 1, 18.5))

	overview, err := repo.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, overview.PendingEntries)
	assert.Equal(t, 18.5, overview.TotalApprovedHours)
	require.NoError(t, mock.ExpectationsWereMet())
}
