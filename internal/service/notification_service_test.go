package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/stemspark-api/internal/models"
	"github.com/noah-isme/stemspark-api/pkg/jobs"
	"github.com/noah-isme/stemspark-api/pkg/mail"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) (mail.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return mail.Result{}, f.err
	}
	f.sent = append(f.sent, msg)
	return mail.Result{Success: true, Provider: "fake", MessageID: "msg-1"}, nil
}

func (f *fakeSender) messages() []mail.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mail.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

type stubDirectory struct {
	profiles map[string]models.Profile
	admins   []models.Profile
	err      error
}

func (s *stubDirectory) FindByID(_ context.Context, id string) (*models.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.New("profile missing")
	}
	return &p, nil
}

func (s *stubDirectory) ListAdmins(context.Context) ([]models.Profile, error) {
	return s.admins, s.err
}

type rejectingQueue struct{}

func (rejectingQueue) Enqueue(jobs.Job) error { return jobs.ErrQueueFull }

func newNotificationFixture() (*NotificationService, *fakeSender, *MetricsService) {
	sender := &fakeSender{}
	dir := &stubDirectory{
		profiles: map[string]models.Profile{
			"intern-1": {ID: "intern-1", Email: "ada@example.com", FullName: "Ada", Role: models.RoleIntern},
		},
		admins: []models.Profile{
			{ID: "a1", Email: "one@example.com", FullName: "One", Role: models.RoleAdmin},
			{ID: "a2", Email: "two@example.com", FullName: "Two", Role: models.RoleAdmin},
			{ID: "a3", FullName: "No Email", Role: models.RoleAdmin},
		},
	}
	metrics := NewMetricsService()
	return NewNotificationService(sender, dir, metrics, "https://stemspark.test", zap.NewNop()), sender, metrics
}

func sampleEntry() models.VolunteerHours {
	reason := "insufficient detail"
	return models.VolunteerHours{
		ID:                  "vh-1",
		InternID:            "intern-1",
		ActivityDate:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		ActivityType:        "Workshop",
		ActivityDescription: "Robotics workshop",
		Hours:               2.5,
		RejectionReason:     &reason,
	}
}

func TestNotificationServiceFansOutToAdmins(t *testing.T) {
	svc, sender, _ := newNotificationFixture()

	err := svc.Handle(context.Background(), jobs.Job{
		Type:    JobVolunteerHoursSubmitted,
		Payload: submittedPayload{Entry: sampleEntry(), InternName: "Ada"},
	})
	require.NoError(t, err)

	sent := sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "one@example.com", sent[0].ToEmail)
	assert.Equal(t, "two@example.com", sent[1].ToEmail)
	assert.Equal(t, "New Volunteer Hours Submission - Ada", sent[0].Subject)
	assert.Equal(t, TemplateNewVolunteerHours, sent[0].Template)
	assert.Equal(t, "2.5", sent[0].TemplateData["hours"])
	assert.Equal(t, "2024-06-10", sent[0].TemplateData["activity_date"])
	assert.Equal(t, "https://stemspark.test/admin/volunteer-hours", sent[0].TemplateData["admin_dashboard_url"])
	assert.Contains(t, sent[0].FallbackHTML, "Robotics workshop")
}

func TestNotificationServiceApprovalEmail(t *testing.T) {
	svc, sender, metrics := newNotificationFixture()

	err := svc.Handle(context.Background(), jobs.Job{
		Type:    JobVolunteerHoursApproved,
		Payload: reviewedPayload{Entry: sampleEntry(), TotalHours: 12},
	})
	require.NoError(t, err)

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].ToEmail)
	assert.Equal(t, "Volunteer Hours Approved - STEM Spark Academy", sent[0].Subject)
	assert.Equal(t, "12", sent[0].TemplateData["total_hours"])
	assert.Equal(t, "https://stemspark.test/intern-dashboard/volunteer-hours", sent[0].TemplateData["dashboard_url"])
	assert.Contains(t, sent[0].FallbackHTML, "Total Hours: 12")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.notifications.WithLabelValues(TemplateVolunteerHoursApproved, OutcomeSuccess)))
}

func TestNotificationServiceRejectionEmail(t *testing.T) {
	svc, sender, _ := newNotificationFixture()

	require.NoError(t, svc.Handle(context.Background(), jobs.Job{
		Type:    JobVolunteerHoursRejected,
		Payload: reviewedPayload{Entry: sampleEntry()},
	}))

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Volunteer Hours Update - STEM Spark Academy", sent[0].Subject)
	assert.Equal(t, "insufficient detail", sent[0].TemplateData["rejection_reason"])
	assert.NotContains(t, sent[0].TemplateData, "total_hours")
}

func TestNotificationServiceEscapesFreeTextInFallback(t *testing.T) {
	svc, sender, _ := newNotificationFixture()
	entry := sampleEntry()
	reason := `logged <script>alert(1)</script> & "extra" hours`
	entry.RejectionReason = &reason

	require.NoError(t, svc.Handle(context.Background(), jobs.Job{
		Type:    JobVolunteerHoursRejected,
		Payload: reviewedPayload{Entry: entry},
	}))

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, reason, sent[0].TemplateData["rejection_reason"])
	assert.NotContains(t, sent[0].FallbackHTML, "<script>")
	assert.Contains(t, sent[0].FallbackHTML, "&lt;script&gt;")
}

func TestNotificationServiceFailureIsReturnedToQueue(t *testing.T) {
	svc, sender, metrics := newNotificationFixture()
	sender.err = errors.New("smtp down")

	err := svc.Handle(context.Background(), jobs.Job{
		Type:    JobVolunteerHoursApproved,
		Payload: reviewedPayload{Entry: sampleEntry(), TotalHours: 1},
	})
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.notifications.WithLabelValues(TemplateVolunteerHoursApproved, OutcomeFailed)))

	err = svc.Handle(context.Background(), jobs.Job{Type: JobVolunteerHoursApproved, Payload: "bogus"})
	require.Error(t, err)
}

func TestNotificationServiceSendsInlineWhenQueueRejects(t *testing.T) {
	svc, sender, _ := newNotificationFixture()
	svc.SetQueue(rejectingQueue{})

	svc.NotifyRejection(context.Background(), sampleEntry())

	require.Eventually(t, func() bool { return len(sender.messages()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestNotificationServiceThroughQueue(t *testing.T) {
	svc, sender, _ := newNotificationFixture()
	queue := jobs.NewQueue("notifications", svc.Handle, jobs.QueueConfig{Workers: 2, BufferSize: 8})
	queue.Start(context.Background())
	svc.SetQueue(queue)

	intern := &models.Profile{ID: "intern-1", FullName: "Ada"}
	svc.NotifyAdminsOfNewSubmission(context.Background(), sampleEntry(), intern)

	require.Eventually(t, func() bool { return len(sender.messages()) == 2 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, queue.Stop(ctx))
}
