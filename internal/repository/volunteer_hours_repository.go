package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/stemspark-api/internal/models"
)

// ErrDuplicateReference is returned when the intern already has an entry for the same source record.
// References are unique per intern, never across interns.
var ErrDuplicateReference = errors.New("volunteer hours reference already exists")

const uniqueViolation = "23505"

const volunteerHoursColumns = `id, intern_id, activity_date, activity_type, activity_description, description, hours,
       status, approved_by, approved_at, rejection_reason, reference_id, created_at, updated_at`

// recomputeTotalQuery re-sums every approved entry; totals are never adjusted incrementally.
const recomputeTotalQuery = `UPDATE profiles
	SET total_volunteer_hours = (
		SELECT COALESCE(SUM(hours), 0) FROM volunteer_hours WHERE intern_id = $1 AND status = 'approved'
	), updated_at = $2
	WHERE id = $1
	RETURNING total_volunteer_hours`

// VolunteerHoursRepository persists volunteer hours submissions.
type VolunteerHoursRepository struct {
	db *sqlx.DB
}

// NewVolunteerHoursRepository constructs the repository.
func NewVolunteerHoursRepository(db *sqlx.DB) *VolunteerHoursRepository {
	return &VolunteerHoursRepository{db: db}
}

// Create inserts a new pending entry.
func (r *VolunteerHoursRepository) Create(ctx context.Context, entry *models.VolunteerHours) error {
	prepareInsert(entry, models.VolunteerHoursPending)
	if _, err := r.db.NamedExecContext(ctx, insertVolunteerHoursQuery, entry); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("create volunteer hours: %w", err)
	}
	return nil
}

// GetByID fetches an entry by identifier.
func (r *VolunteerHoursRepository) GetByID(ctx context.Context, id string) (*models.VolunteerHours, error) {
	query := `SELECT ` + volunteerHoursColumns + ` FROM volunteer_hours WHERE id = $1`
	var entry models.VolunteerHours
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get volunteer hours: %w", err)
	}
	return &entry, nil
}

// FindByReference returns the intern's entry linked to a source record such as a tutoring session.
func (r *VolunteerHoursRepository) FindByReference(ctx context.Context, internID, referenceID string) (*models.VolunteerHours, error) {
	query := `SELECT ` + volunteerHoursColumns + ` FROM volunteer_hours WHERE intern_id = $1 AND reference_id = $2 LIMIT 1`
	var entry models.VolunteerHours
	if err := r.db.GetContext(ctx, &entry, query, internID, referenceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find volunteer hours by reference: %w", err)
	}
	return &entry, nil
}

// ListByIntern returns every entry of an intern, newest first.
func (r *VolunteerHoursRepository) ListByIntern(ctx context.Context, internID string) ([]models.VolunteerHours, error) {
	query := `SELECT ` + volunteerHoursColumns + ` FROM volunteer_hours WHERE intern_id = $1 ORDER BY created_at DESC`
	entries := make([]models.VolunteerHours, 0)
	if err := r.db.SelectContext(ctx, &entries, query, internID); err != nil {
		return nil, fmt.Errorf("list volunteer hours: %w", err)
	}
	return entries, nil
}

type pendingRow struct {
	models.VolunteerHours
	SubmitterEmail    sql.NullString `db:"submitter_email"`
	SubmitterFullName sql.NullString `db:"submitter_full_name"`
}

// ListPending returns one page of pending entries joined with their submitter profile,
// newest first. Limits above models.MaxPageSize are clamped.
func (r *VolunteerHoursRepository) ListPending(ctx context.Context, filter models.VolunteerHoursFilter) (*models.PendingVolunteerHoursPage, error) {
	limit := filter.Limit
	switch {
	case limit <= 0:
		limit = models.DefaultPageSize
	case limit > models.MaxPageSize:
		limit = models.MaxPageSize
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM volunteer_hours WHERE status = $1`, models.VolunteerHoursPending); err != nil {
		return nil, fmt.Errorf("count pending volunteer hours: %w", err)
	}

	query := fmt.Sprintf(`SELECT vh.id, vh.intern_id, vh.activity_date, vh.activity_type, vh.activity_description,
       vh.description, vh.hours, vh.status, vh.approved_by, vh.approved_at, vh.rejection_reason,
       vh.reference_id, vh.created_at, vh.updated_at,
       p.email AS submitter_email, p.full_name AS submitter_full_name
	FROM volunteer_hours vh
	LEFT JOIN profiles p ON p.id = vh.intern_id
	WHERE vh.status = $1
	ORDER BY vh.created_at DESC
	LIMIT %d OFFSET %d`, limit, offset)

	var rows []pendingRow
	if err := r.db.SelectContext(ctx, &rows, query, models.VolunteerHoursPending); err != nil {
		return nil, fmt.Errorf("list pending volunteer hours: %w", err)
	}
	page := &models.PendingVolunteerHoursPage{
		Items:  make([]models.PendingVolunteerHours, 0, len(rows)),
		Limit:  limit,
		Offset: offset,
		Total:  total,
	}
	for _, row := range rows {
		page.Items = append(page.Items, models.PendingVolunteerHours{
			VolunteerHours: row.VolunteerHours,
			Intern: models.Submitter{
				ID:       row.InternID,
				Email:    row.SubmitterEmail.String,
				FullName: row.SubmitterFullName.String,
			},
		})
	}
	return page, nil
}

// ApproveParams carries the columns written by an approval.
type ApproveParams struct {
	ID         string
	ApprovedBy string
	ApprovedAt time.Time
}

// Approve moves a pending entry to approved and re-sums the owner's approved hours in one transaction.
// It returns sql.ErrNoRows when the entry is no longer pending.
func (r *VolunteerHoursRepository) Approve(ctx context.Context, params ApproveParams) (*models.VolunteerHours, float64, error) {
	var (
		entry models.VolunteerHours
		total float64
	)
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `UPDATE volunteer_hours
	SET status = $2, approved_by = $3, approved_at = $4, updated_at = $4
	WHERE id = $1 AND status = $5
	RETURNING ` + volunteerHoursColumns
		if err := tx.GetContext(ctx, &entry, query,
			params.ID,
			models.VolunteerHoursApproved,
			params.ApprovedBy,
			params.ApprovedAt,
			models.VolunteerHoursPending,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return err
			}
			return fmt.Errorf("approve volunteer hours: %w", err)
		}
		var err error
		total, err = recomputeTotal(ctx, tx, entry.InternID, params.ApprovedAt)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return &entry, total, nil
}

// RejectParams carries the columns written by a rejection.
type RejectParams struct {
	ID         string
	Reason     string
	RejectedAt time.Time
}

// Reject moves a pending entry to rejected. Totals are untouched.
// It returns sql.ErrNoRows when the entry is no longer pending.
func (r *VolunteerHoursRepository) Reject(ctx context.Context, params RejectParams) (*models.VolunteerHours, error) {
	query := `UPDATE volunteer_hours
	SET status = $2, rejection_reason = $3, updated_at = $4
	WHERE id = $1 AND status = $5
	RETURNING ` + volunteerHoursColumns
	var entry models.VolunteerHours
	if err := r.db.GetContext(ctx, &entry, query,
		params.ID,
		models.VolunteerHoursRejected,
		params.Reason,
		params.RejectedAt,
		models.VolunteerHoursPending,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("reject volunteer hours: %w", err)
	}
	return &entry, nil
}

// CreateApproved inserts an already approved entry and re-sums the owner's total in one transaction.
func (r *VolunteerHoursRepository) CreateApproved(ctx context.Context, entry *models.VolunteerHours) (float64, error) {
	prepareInsert(entry, models.VolunteerHoursApproved)
	if entry.ApprovedAt == nil {
		approvedAt := entry.CreatedAt
		entry.ApprovedAt = &approvedAt
	}
	var total float64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertVolunteerHoursQuery, entry); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateReference
			}
			return fmt.Errorf("create approved volunteer hours: %w", err)
		}
		var err error
		total, err = recomputeTotal(ctx, tx, entry.InternID, entry.CreatedAt)
		return err
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Overview aggregates counters for the admin dashboard.
func (r *VolunteerHoursRepository) Overview(ctx context.Context) (*models.VolunteerHoursOverview, error) {
	const query = `SELECT
	COUNT(*) FILTER (WHERE status = 'pending') AS pending_entries,
	COUNT(*) FILTER (WHERE status = 'approved') AS approved_entries,
	COUNT(*) FILTER (WHERE status = 'rejected') AS rejected_entries,
	COALESCE(SUM(hours) FILTER (WHERE status = 'approved'), 0) AS total_approved_hours
	FROM volunteer_hours`
	var overview models.VolunteerHoursOverview
	if err := r.db.GetContext(ctx, &overview, query); err != nil {
		return nil, fmt.Errorf("volunteer hours overview: %w", err)
	}
	return &overview, nil
}

const insertVolunteerHoursQuery = `INSERT INTO volunteer_hours
	(id, intern_id, activity_date, activity_type, activity_description, description, hours, status,
	 approved_by, approved_at, rejection_reason, reference_id, created_at, updated_at)
	VALUES (:id, :intern_id, :activity_date, :activity_type, :activity_description, :description, :hours, :status,
	 :approved_by, :approved_at, :rejection_reason, :reference_id, :created_at, :updated_at)`

func prepareInsert(entry *models.VolunteerHours, status models.VolunteerHoursStatus) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = status
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func recomputeTotal(ctx context.Context, tx *sqlx.Tx, internID string, at time.Time) (float64, error) {
	var total float64
	if err := tx.GetContext(ctx, &total, recomputeTotalQuery, internID, at); err != nil {
		return 0, fmt.Errorf("recompute total volunteer hours: %w", err)
	}
	return total, nil
}

func (r *VolunteerHoursRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin volunteer hours tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit volunteer hours tx: %w", err)
	}
	return nil
}
