package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/internal/models"
	"github.com/noah-isme/stemspark-api/pkg/jobs"
	"github.com/noah-isme/stemspark-api/pkg/logger"
	"github.com/noah-isme/stemspark-api/pkg/mail"
)

// Job types handled by NotificationService.Handle.
const (
	JobSendEmail               = "notification.email"
	JobVolunteerHoursSubmitted = "notification.volunteer_hours.submitted"
	JobVolunteerHoursApproved  = "notification.volunteer_hours.approved"
	JobVolunteerHoursRejected  = "notification.volunteer_hours.rejected"
)

const activityDateLayout = "2006-01-02"

type mailSender interface {
	Send(ctx context.Context, msg mail.Message) (mail.Result, error)
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

type profileDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	ListAdmins(ctx context.Context) ([]models.Profile, error)
}

type submittedPayload struct {
	Entry      models.VolunteerHours
	InternName string
}

type reviewedPayload struct {
	Entry      models.VolunteerHours
	TotalHours float64
}

// NotificationService builds volunteer hours emails and delivers them off the request path.
// Notify* calls never fail the caller: problems are logged and counted.
type NotificationService struct {
	sender   mailSender
	queue    jobQueue
	profiles profileDirectory
	metrics  *MetricsService
	siteURL  string
	logger   *zap.Logger
}

// NewNotificationService constructs the service. The queue may be attached later with SetQueue.
func NewNotificationService(sender mailSender, profiles profileDirectory, metrics *MetricsService, siteURL string, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{sender: sender, profiles: profiles, metrics: metrics, siteURL: siteURL, logger: logger}
}

// SetQueue attaches the worker queue whose handler is s.Handle.
func (s *NotificationService) SetQueue(queue jobQueue) {
	s.queue = queue
}

// SendEmail delivers one message synchronously.
func (s *NotificationService) SendEmail(ctx context.Context, msg mail.Message) (mail.Result, error) {
	res, err := s.sender.Send(ctx, msg)
	if err != nil {
		s.metrics.RecordNotification(msg.Template, OutcomeFailed)
		logger.WithContext(ctx, s.logger).Error("email delivery failed",
			zap.String("template", msg.Template), zap.String("to", msg.ToEmail), zap.Error(err))
		return mail.Result{Success: false}, err
	}
	s.metrics.RecordNotification(msg.Template, OutcomeSuccess)
	return res, nil
}

// NotifyAdminsOfNewSubmission emails every admin about a pending entry.
func (s *NotificationService) NotifyAdminsOfNewSubmission(ctx context.Context, entry models.VolunteerHours, intern *models.Profile) {
	payload := submittedPayload{Entry: entry}
	if intern != nil {
		payload.InternName = intern.FullName
	}
	s.dispatch(ctx, jobs.Job{Type: JobVolunteerHoursSubmitted, Payload: payload})
}

// NotifyApproval emails the intern that an entry was approved.
func (s *NotificationService) NotifyApproval(ctx context.Context, entry models.VolunteerHours, totalHours float64) {
	s.dispatch(ctx, jobs.Job{Type: JobVolunteerHoursApproved, Payload: reviewedPayload{Entry: entry, TotalHours: totalHours}})
}

// NotifyRejection emails the intern that an entry was rejected.
func (s *NotificationService) NotifyRejection(ctx context.Context, entry models.VolunteerHours) {
	s.dispatch(ctx, jobs.Job{Type: JobVolunteerHoursRejected, Payload: reviewedPayload{Entry: entry}})
}

func (s *NotificationService) dispatch(ctx context.Context, job jobs.Job) {
	if s.queue != nil {
		err := s.queue.Enqueue(job)
		if err == nil {
			return
		}
		logger.WithContext(ctx, s.logger).Warn("notification queue rejected job, sending inline",
			zap.String("type", job.Type), zap.Error(err))
	}
	go func() {
		if err := s.Handle(context.WithoutCancel(ctx), job); err != nil {
			s.logger.Warn("notification job failed", zap.String("type", job.Type), zap.Error(err))
		}
	}()
}

// Handle executes a notification job. Returned errors are retried by the queue.
func (s *NotificationService) Handle(ctx context.Context, job jobs.Job) error {
	switch job.Type {
	case JobSendEmail:
		msg, ok := job.Payload.(mail.Message)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
		}
		_, err := s.SendEmail(ctx, msg)
		return err
	case JobVolunteerHoursSubmitted:
		payload, ok := job.Payload.(submittedPayload)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
		}
		return s.fanOutToAdmins(ctx, payload)
	case JobVolunteerHoursApproved, JobVolunteerHoursRejected:
		payload, ok := job.Payload.(reviewedPayload)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", job.Payload, job.Type)
		}
		return s.notifyIntern(ctx, job.Type, payload)
	default:
		s.logger.Warn("unknown notification job", zap.String("type", job.Type))
		return nil
	}
}

func (s *NotificationService) fanOutToAdmins(ctx context.Context, payload submittedPayload) error {
	admins, err := s.profiles.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	entry := payload.Entry
	data := map[string]interface{}{
		"intern_name":         payload.InternName,
		"activity_type":       entry.ActivityType,
		"activity_date":       entry.ActivityDate.Format(activityDateLayout),
		"hours":               formatHours(entry.Hours),
		"description":         entry.ActivityDescription,
		"admin_dashboard_url": s.siteURL + "/admin/volunteer-hours",
	}
	for _, admin := range admins {
		if admin.Email == "" {
			continue
		}
		msg, err := s.buildMessage(admin.Email, admin.FullName,
			"New Volunteer Hours Submission - "+payload.InternName, TemplateNewVolunteerHours, data)
		if err != nil {
			return err
		}
		s.sendOne(ctx, msg)
	}
	return nil
}

func (s *NotificationService) notifyIntern(ctx context.Context, jobType string, payload reviewedPayload) error {
	entry := payload.Entry
	intern, err := s.profiles.FindByID(ctx, entry.InternID)
	if err != nil {
		return fmt.Errorf("load intern %s: %w", entry.InternID, err)
	}
	if intern.Email == "" {
		return nil
	}
	data := map[string]interface{}{
		"user_name":     intern.FullName,
		"hours":         formatHours(entry.Hours),
		"activity_type": entry.ActivityType,
		"activity_date": entry.ActivityDate.Format(activityDateLayout),
		"dashboard_url": s.siteURL + "/intern-dashboard/volunteer-hours",
	}

	var subject, tmpl string
	if jobType == JobVolunteerHoursApproved {
		subject, tmpl = "Volunteer Hours Approved - STEM Spark Academy", TemplateVolunteerHoursApproved
		data["total_hours"] = formatHours(payload.TotalHours)
	} else {
		subject, tmpl = "Volunteer Hours Update - STEM Spark Academy", TemplateVolunteerHoursRejected
		reason := ""
		if entry.RejectionReason != nil {
			reason = *entry.RejectionReason
		}
		data["rejection_reason"] = reason
	}

	msg, err := s.buildMessage(intern.Email, intern.FullName, subject, tmpl, data)
	if err != nil {
		return err
	}
	_, err = s.SendEmail(ctx, msg)
	return err
}

// sendOne queues a single email so each recipient retries independently.
func (s *NotificationService) sendOne(ctx context.Context, msg mail.Message) {
	if s.queue != nil && s.queue.Enqueue(jobs.Job{Type: JobSendEmail, Payload: msg}) == nil {
		return
	}
	_, _ = s.SendEmail(ctx, msg)
}

func (s *NotificationService) buildMessage(to, name, subject, tmpl string, data map[string]interface{}) (mail.Message, error) {
	html, err := renderFallback(tmpl, data)
	if err != nil {
		return mail.Message{}, err
	}
	return mail.Message{
		ToEmail:      to,
		ToName:       name,
		Subject:      subject,
		Template:     tmpl,
		TemplateData: data,
		FallbackHTML: html,
	}, nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
