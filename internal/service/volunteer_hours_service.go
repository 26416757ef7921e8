package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/internal/dto"
	"github.com/noah-isme/stemspark-api/internal/models"
	"github.com/noah-isme/stemspark-api/internal/repository"
	appErrors "github.com/noah-isme/stemspark-api/pkg/errors"
	"github.com/noah-isme/stemspark-api/pkg/logger"
)

// User-facing messages of the volunteer hours workflow.
const (
	MsgMissingFields       = "Missing required fields"
	MsgHoursOutOfRange     = "Hours must be between 0 and 24"
	MsgInvalidDate         = "Activity date must use the YYYY-MM-DD format"
	MsgInvalidAccount      = "Invalid intern account"
	MsgHoursNotFound       = "Volunteer hours not found"
	MsgNotPending          = "Hours are not pending approval"
	MsgReasonRequired      = "Rejection reason is required"
	MsgReasonTooLong       = "Rejection reason must be at most 1000 characters"
	MsgSessionNotFound     = "Tutoring session not found or not completed"
	MsgSessionDuplicate    = "Volunteer hours already exist for this session"
	MsgReferenceDuplicate  = "Volunteer hours already exist for this reference"
	MsgInvalidSubmission   = "Invalid volunteer hours submission"
	maxHoursPerEntry       = 24.0
	maxRejectionReasonSize = 1000
	recentWindow           = 30 * 24 * time.Hour
	monthLength            = 30 * 24 * time.Hour
)

// Operation labels used for metrics.
const (
	opSubmit        = "submit"
	opApprove       = "approve"
	opReject        = "reject"
	opSessionCreate = "session_create"
)

type volunteerHoursStore interface {
	Create(ctx context.Context, entry *models.VolunteerHours) error
	GetByID(ctx context.Context, id string) (*models.VolunteerHours, error)
	FindByReference(ctx context.Context, internID, referenceID string) (*models.VolunteerHours, error)
	ListByIntern(ctx context.Context, internID string) ([]models.VolunteerHours, error)
	ListPending(ctx context.Context, filter models.VolunteerHoursFilter) (*models.PendingVolunteerHoursPage, error)
	Approve(ctx context.Context, params repository.ApproveParams) (*models.VolunteerHours, float64, error)
	Reject(ctx context.Context, params repository.RejectParams) (*models.VolunteerHours, error)
	CreateApproved(ctx context.Context, entry *models.VolunteerHours) (float64, error)
	Overview(ctx context.Context) (*models.VolunteerHoursOverview, error)
}

type tutoringSessionReader interface {
	FindCompleted(ctx context.Context, sessionID, internID string) (*models.TutoringSession, error)
}

type adminAuthorizer interface {
	CheckAdmin(ctx context.Context, userID string) (models.AdminCheckResult, error)
}

type adminActionRecorder interface {
	Create(ctx context.Context, action *models.AdminAction) error
}

type volunteerNotifier interface {
	NotifyAdminsOfNewSubmission(ctx context.Context, entry models.VolunteerHours, intern *models.Profile)
	NotifyApproval(ctx context.Context, entry models.VolunteerHours, totalHours float64)
	NotifyRejection(ctx context.Context, entry models.VolunteerHours)
}

// VolunteerHoursService implements submission, review and reporting of volunteer hours.
//
// Approved totals are always re-summed from the approved entries inside the same
// transaction as the status change, so profiles.total_volunteer_hours equals the sum
// of approved hours whenever an approval commits.
type VolunteerHoursService struct {
	repo      volunteerHoursStore
	sessions  tutoringSessionReader
	profiles  profileReader
	authz     adminAuthorizer
	actions   adminActionRecorder
	notifier  volunteerNotifier
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	eligibleRoles map[models.ProfileRole]struct{}
	statsTTL      time.Duration
	pageSize      int
	now           func() time.Time
}

// VolunteerHoursOption configures the service.
type VolunteerHoursOption func(*VolunteerHoursService)

// WithVolunteerNotifier sets the notification sink.
func WithVolunteerNotifier(n volunteerNotifier) VolunteerHoursOption {
	return func(s *VolunteerHoursService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithAdminActionRecorder enables the admin action log.
func WithAdminActionRecorder(r adminActionRecorder) VolunteerHoursOption {
	return func(s *VolunteerHoursService) { s.actions = r }
}

// WithVolunteerCache caches stats and the admin overview.
func WithVolunteerCache(cache *CacheService, ttl time.Duration) VolunteerHoursOption {
	return func(s *VolunteerHoursService) {
		s.cache = cache
		if ttl > 0 {
			s.statsTTL = ttl
		}
	}
}

// WithVolunteerMetrics records operation outcomes.
func WithVolunteerMetrics(m *MetricsService) VolunteerHoursOption {
	return func(s *VolunteerHoursService) { s.metrics = m }
}

// WithEligibleRoles overrides the roles allowed to submit hours.
func WithEligibleRoles(roles []string) VolunteerHoursOption {
	return func(s *VolunteerHoursService) {
		if len(roles) == 0 {
			return
		}
		s.eligibleRoles = make(map[models.ProfileRole]struct{}, len(roles))
		for _, role := range roles {
			s.eligibleRoles[models.ProfileRole(strings.ToLower(strings.TrimSpace(role)))] = struct{}{}
		}
	}
}

// WithPendingPageSize sets the default pending queue page size.
func WithPendingPageSize(size int) VolunteerHoursOption {
	return func(s *VolunteerHoursService) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) VolunteerHoursOption {
	return func(s *VolunteerHoursService) {
		if now != nil {
			s.now = now
		}
	}
}

type noopNotifier struct{}

func (noopNotifier) NotifyAdminsOfNewSubmission(context.Context, models.VolunteerHours, *models.Profile) {
}
func (noopNotifier) NotifyApproval(context.Context, models.VolunteerHours, float64) {}
func (noopNotifier) NotifyRejection(context.Context, models.VolunteerHours)         {}

// NewVolunteerHoursService constructs the service with defaults.
func NewVolunteerHoursService(
	repo volunteerHoursStore,
	sessions tutoringSessionReader,
	profiles profileReader,
	authz adminAuthorizer,
	validate *validator.Validate,
	logger *zap.Logger,
	opts ...VolunteerHoursOption,
) *VolunteerHoursService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &VolunteerHoursService{
		repo:          repo,
		sessions:      sessions,
		profiles:      profiles,
		authz:         authz,
		notifier:      noopNotifier{},
		validator:     validate,
		logger:        logger,
		eligibleRoles: map[models.ProfileRole]struct{}{models.RoleIntern: {}},
		statsTTL:      2 * time.Minute,
		pageSize:      models.DefaultPageSize,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Submit records a pending entry for the intern named in req and notifies admins.
func (s *VolunteerHoursService) Submit(ctx context.Context, req dto.SubmitVolunteerHoursRequest) (*models.VolunteerHours, error) {
	if err := s.validateSubmission(req); err != nil {
		s.metrics.RecordVolunteerOperation(opSubmit, OutcomeInvalid)
		return nil, err
	}
	activityDate, err := time.Parse(activityDateLayout, strings.TrimSpace(req.ActivityDate))
	if err != nil {
		s.metrics.RecordVolunteerOperation(opSubmit, OutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgInvalidDate)
	}

	intern, err := s.profiles.FindByID(ctx, req.InternID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordVolunteerOperation(opSubmit, OutcomeDenied)
			return nil, appErrors.ErrInvalidAccount
		}
		return nil, s.dependency(ctx, opSubmit, "load intern profile", err)
	}
	if _, ok := s.eligibleRoles[intern.Role]; !ok {
		s.metrics.RecordVolunteerOperation(opSubmit, OutcomeDenied)
		return nil, appErrors.ErrInvalidAccount
	}

	entry := &models.VolunteerHours{
		InternID:            intern.ID,
		ActivityDate:        activityDate,
		ActivityType:        strings.TrimSpace(req.ActivityType),
		ActivityDescription: strings.TrimSpace(req.ActivityDescription),
		Description:         optionalText(req.Description),
		Hours:               req.Hours,
		Status:              models.VolunteerHoursPending,
	}
	if ref := strings.TrimSpace(req.ReferenceID); ref != "" {
		entry.ReferenceID = &ref
	}
	now := s.now()
	entry.CreatedAt, entry.UpdatedAt = now, now

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			s.metrics.RecordVolunteerOperation(opSubmit, OutcomeInvalid)
			return nil, appErrors.Clone(appErrors.ErrConflict, MsgReferenceDuplicate)
		}
		return nil, s.dependency(ctx, opSubmit, "create volunteer hours", err)
	}

	s.invalidate(ctx, entry.InternID)
	s.metrics.RecordVolunteerOperation(opSubmit, OutcomeSuccess)
	s.notifier.NotifyAdminsOfNewSubmission(ctx, *entry, intern)
	return entry, nil
}

func (s *VolunteerHoursService) validateSubmission(req dto.SubmitVolunteerHoursRequest) error {
	if err := s.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					return appErrors.Clone(appErrors.ErrValidation, MsgMissingFields)
				}
			}
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("%s is too long", strings.ToLower(verrs[0].Field())))
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, MsgInvalidSubmission)
	}
	if !validHours(req.Hours) {
		return appErrors.Clone(appErrors.ErrValidation, MsgHoursOutOfRange)
	}
	return nil
}

// optionalText trims value and maps blank input to nil. Free text is stored as
// entered; escaping happens when it is rendered.
func optionalText(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}

func validHours(h float64) bool {
	return !math.IsNaN(h) && h > 0 && h <= maxHoursPerEntry
}

// Approve moves a pending entry to approved on behalf of adminID and re-sums the intern's total.
func (s *VolunteerHoursService) Approve(ctx context.Context, entryID, adminID string, meta dto.ReviewMetadata) (*models.VolunteerHours, error) {
	if err := s.authorizeReview(ctx, opApprove, models.AdminActionApproveHours, entryID, adminID, meta); err != nil {
		return nil, err
	}
	if _, err := s.loadPending(ctx, opApprove, entryID); err != nil {
		return nil, err
	}

	entry, total, err := s.repo.Approve(ctx, repository.ApproveParams{
		ID:         entryID,
		ApprovedBy: adminID,
		ApprovedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordVolunteerOperation(opApprove, OutcomeInvalid)
			return nil, appErrors.Clone(appErrors.ErrInvalidState, MsgNotPending)
		}
		return nil, s.dependency(ctx, opApprove, "approve volunteer hours", err)
	}

	s.invalidate(ctx, entry.InternID)
	s.metrics.RecordVolunteerOperation(opApprove, OutcomeSuccess)
	logger.WithContext(ctx, s.logger).Info("volunteer hours approved",
		zap.String("entry_id", entry.ID),
		zap.String("intern_id", entry.InternID),
		zap.String("admin_id", adminID),
		zap.Float64("total_hours", total),
	)
	s.notifier.NotifyApproval(ctx, *entry, total)
	return entry, nil
}

// Reject moves a pending entry to rejected with a mandatory reason. Totals are unchanged.
func (s *VolunteerHoursService) Reject(ctx context.Context, entryID, adminID, reason string, meta dto.ReviewMetadata) (*models.VolunteerHours, error) {
	if err := s.authorizeReview(ctx, opReject, models.AdminActionRejectHours, entryID, adminID, meta); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		s.metrics.RecordVolunteerOperation(opReject, OutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgReasonRequired)
	}
	if len([]rune(reason)) > maxRejectionReasonSize {
		s.metrics.RecordVolunteerOperation(opReject, OutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgReasonTooLong)
	}
	if _, err := s.loadPending(ctx, opReject, entryID); err != nil {
		return nil, err
	}

	entry, err := s.repo.Reject(ctx, repository.RejectParams{ID: entryID, Reason: reason, RejectedAt: s.now()})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordVolunteerOperation(opReject, OutcomeInvalid)
			return nil, appErrors.Clone(appErrors.ErrInvalidState, MsgNotPending)
		}
		return nil, s.dependency(ctx, opReject, "reject volunteer hours", err)
	}

	s.invalidate(ctx, entry.InternID)
	s.metrics.RecordVolunteerOperation(opReject, OutcomeSuccess)
	s.notifier.NotifyRejection(ctx, *entry)
	return entry, nil
}

// authorizeReview runs the admin check and records the attempt in the action log.
func (s *VolunteerHoursService) authorizeReview(ctx context.Context, op, actionType, entryID, adminID string, meta dto.ReviewMetadata) error {
	result, err := s.authz.CheckAdmin(ctx, adminID)
	if err != nil && !errors.Is(err, appErrors.ErrNotFound) && !errors.Is(err, appErrors.ErrUnauthorized) {
		return s.dependency(ctx, op, "check admin", err)
	}
	s.recordAction(ctx, actionType, adminID, entryID, meta, result)
	if !result.Authorized {
		s.metrics.RecordVolunteerOperation(op, OutcomeDenied)
		reason := result.Reason
		if reason == "" {
			reason = reasonAdminRequired
		}
		return appErrors.Clone(appErrors.ErrForbidden, reason)
	}
	if strings.TrimSpace(entryID) == "" {
		s.metrics.RecordVolunteerOperation(op, OutcomeInvalid)
		return appErrors.Clone(appErrors.ErrValidation, MsgMissingFields)
	}
	return nil
}

func (s *VolunteerHoursService) loadPending(ctx context.Context, op, entryID string) (*models.VolunteerHours, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordVolunteerOperation(op, OutcomeInvalid)
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgHoursNotFound)
		}
		return nil, s.dependency(ctx, op, "load volunteer hours", err)
	}
	if entry.Status != models.VolunteerHoursPending {
		s.metrics.RecordVolunteerOperation(op, OutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrInvalidState, MsgNotPending)
	}
	return entry, nil
}

func (s *VolunteerHoursService) recordAction(ctx context.Context, actionType, adminID, entryID string, meta dto.ReviewMetadata, result models.AdminCheckResult) {
	if s.actions == nil {
		return
	}
	metadata, err := json.Marshal(meta)
	if err != nil {
		metadata = nil
	}
	action := &models.AdminAction{
		ActionType:  actionType,
		PerformedBy: adminID,
		Metadata:    metadata,
		IsAllowed:   result.Authorized,
	}
	if entryID != "" {
		action.ResourceID = &entryID
	}
	if result.Reason != "" {
		reason := result.Reason
		action.Reason = &reason
	}
	if err := s.actions.Create(ctx, action); err != nil {
		logger.WithContext(ctx, s.logger).Warn("failed to persist admin action", zap.String("action", actionType), zap.Error(err))
	}
}

// ListForIntern returns every entry of internID, newest first. No rows is an empty list.
func (s *VolunteerHoursService) ListForIntern(ctx context.Context, internID string) ([]models.VolunteerHours, error) {
	if strings.TrimSpace(internID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgMissingFields)
	}
	entries, err := s.repo.ListByIntern(ctx, internID)
	if err != nil {
		return nil, s.dependency(ctx, "list", "list volunteer hours", err)
	}
	if entries == nil {
		entries = []models.VolunteerHours{}
	}
	return entries, nil
}

// ListPending returns one page of the admin review queue joined with submitter details.
// Pages are cached until the next mutation.
func (s *VolunteerHoursService) ListPending(ctx context.Context, limit, offset int) (*models.PendingVolunteerHoursPage, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	if offset < 0 {
		offset = 0
	}
	key := pendingCacheKey(limit, offset)
	var cached models.PendingVolunteerHoursPage
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	page, err := s.repo.ListPending(ctx, models.VolunteerHoursFilter{
		Status: []models.VolunteerHoursStatus{models.VolunteerHoursPending},
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, s.dependency(ctx, "list_pending", "list pending volunteer hours", err)
	}
	if page.Items == nil {
		page.Items = []models.PendingVolunteerHours{}
	}
	s.cache.Set(ctx, key, page, s.statsTTL)
	return page, nil
}

// Stats summarises one intern's entries.
func (s *VolunteerHoursService) Stats(ctx context.Context, internID string) (*models.VolunteerHoursStats, error) {
	if strings.TrimSpace(internID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgMissingFields)
	}
	key := statsCacheKey(internID)
	var cached models.VolunteerHoursStats
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	entries, err := s.repo.ListByIntern(ctx, internID)
	if err != nil {
		return nil, s.dependency(ctx, "stats", "load volunteer hours for stats", err)
	}
	stats := ComputeStats(entries, s.now())
	s.cache.Set(ctx, key, stats, s.statsTTL)
	return &stats, nil
}

// ComputeStats derives the per-status sums, the count of entries created in the last
// 30 days and the average hours per 30-day month since the first entry, with at least one month.
func ComputeStats(entries []models.VolunteerHours, now time.Time) models.VolunteerHoursStats {
	var (
		stats models.VolunteerHoursStats
		first time.Time
	)
	for _, entry := range entries {
		stats.TotalHours += entry.Hours
		switch entry.Status {
		case models.VolunteerHoursApproved:
			stats.ApprovedHours += entry.Hours
		case models.VolunteerHoursPending:
			stats.PendingHours += entry.Hours
		case models.VolunteerHoursRejected:
			stats.RejectedHours += entry.Hours
		}
		if now.Sub(entry.CreatedAt) <= recentWindow {
			stats.RecentSubmissions++
		}
		if first.IsZero() || entry.CreatedAt.Before(first) {
			first = entry.CreatedAt
		}
	}

	months := 1.0
	if !first.IsZero() {
		if elapsed := now.Sub(first); elapsed > 0 {
			months = math.Max(1, math.Ceil(float64(elapsed)/float64(monthLength)))
		}
	}
	stats.AverageHoursPerMonth = math.Round(stats.TotalHours/months*100) / 100
	return stats
}

// CreateFromCompletedSession inserts an approved entry for a completed tutoring session
// owned by internID. Each session yields at most one entry.
func (s *VolunteerHoursService) CreateFromCompletedSession(ctx context.Context, sessionID, internID string, hours float64, note string) (*models.VolunteerHours, error) {
	sessionID, internID = strings.TrimSpace(sessionID), strings.TrimSpace(internID)
	if sessionID == "" || internID == "" {
		s.metrics.RecordVolunteerOperation(opSessionCreate, OutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgMissingFields)
	}
	if !validHours(hours) {
		s.metrics.RecordVolunteerOperation(opSessionCreate, OutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrValidation, MsgHoursOutOfRange)
	}

	session, err := s.sessions.FindCompleted(ctx, sessionID, internID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordVolunteerOperation(opSessionCreate, OutcomeInvalid)
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgSessionNotFound)
		}
		return nil, s.dependency(ctx, opSessionCreate, "load tutoring session", err)
	}

	if _, err := s.repo.FindByReference(ctx, internID, sessionID); err == nil {
		s.metrics.RecordVolunteerOperation(opSessionCreate, OutcomeInvalid)
		return nil, appErrors.Clone(appErrors.ErrConflict, MsgSessionDuplicate)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, s.dependency(ctx, opSessionCreate, "check session reference", err)
	}

	now := s.now()
	activityDate := now
	if session.ScheduledTime != nil && !session.ScheduledTime.IsZero() {
		activityDate = session.ScheduledTime.UTC()
	}
	description := strings.TrimSpace(note)
	if description == "" {
		description = fmt.Sprintf("Completed tutoring session in %s", session.Subject)
	}
	ref := session.ID
	entry := &models.VolunteerHours{
		InternID:            internID,
		ActivityDate:        time.Date(activityDate.Year(), activityDate.Month(), activityDate.Day(), 0, 0, 0, 0, time.UTC),
		ActivityType:        models.ActivityTypeTutoring,
		ActivityDescription: fmt.Sprintf("Tutoring session for %s", session.Subject),
		Description:         &description,
		Hours:               hours,
		Status:              models.VolunteerHoursApproved,
		ApprovedAt:          &now,
		ReferenceID:         &ref,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	total, err := s.repo.CreateApproved(ctx, entry)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			s.metrics.RecordVolunteerOperation(opSessionCreate, OutcomeInvalid)
			return nil, appErrors.Clone(appErrors.ErrConflict, MsgSessionDuplicate)
		}
		return nil, s.dependency(ctx, opSessionCreate, "create session volunteer hours", err)
	}

	s.invalidate(ctx, internID)
	s.metrics.RecordVolunteerOperation(opSessionCreate, OutcomeSuccess)
	logger.WithContext(ctx, s.logger).Info("volunteer hours created from tutoring session",
		zap.String("session_id", sessionID),
		zap.String("intern_id", internID),
		zap.Float64("total_hours", total),
	)
	return entry, nil
}

// Overview returns the admin dashboard counters.
func (s *VolunteerHoursService) Overview(ctx context.Context) (*models.VolunteerHoursOverview, error) {
	var cached models.VolunteerHoursOverview
	if s.cache.Get(ctx, overviewCacheKey, &cached) {
		return &cached, nil
	}
	overview, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, s.dependency(ctx, "overview", "load volunteer hours overview", err)
	}
	s.cache.Set(ctx, overviewCacheKey, overview, s.statsTTL)
	return overview, nil
}

const (
	overviewCacheKey    = "volunteer_hours:overview"
	pendingCachePattern = "volunteer_hours:pending:*"
)

func pendingCacheKey(limit, offset int) string {
	return fmt.Sprintf("volunteer_hours:pending:%d:%d", limit, offset)
}

func statsCacheKey(internID string) string {
	return "volunteer_hours:stats:" + internID
}

func (s *VolunteerHoursService) invalidate(ctx context.Context, internID string) {
	s.cache.Invalidate(ctx, statsCacheKey(internID), overviewCacheKey)
	s.cache.InvalidatePattern(ctx, pendingCachePattern)
}

// dependency logs a data store failure and hides it behind the generic internal error.
func (s *VolunteerHoursService) dependency(ctx context.Context, op, msg string, err error) error {
	s.metrics.RecordVolunteerOperation(op, OutcomeFailed)
	logger.WithContext(ctx, s.logger).Error(msg, zap.String("operation", op), zap.Error(err))
	return appErrors.Dependency(err)
}
