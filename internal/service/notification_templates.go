package service

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template identifiers understood by the platform mail service.
const (
	TemplateNewVolunteerHours      = "new_volunteer_hours_notification"
	TemplateVolunteerHoursApproved = "volunteer_hours_approved"
	TemplateVolunteerHoursRejected = "volunteer_hours_rejected"
)

var fallbackTemplates = template.Must(template.New("mail").Parse(`
{{define "new_volunteer_hours_notification"}}<h3>New Volunteer Hours Submission</h3>
<p><strong>Intern:</strong> {{.intern_name}}</p>
<p><strong>Activity:</strong> {{.activity_type}}</p>
<p><strong>Hours:</strong> {{.hours}}</p>
<p><strong>Date:</strong> {{.activity_date}}</p>
<p><strong>Description:</strong> {{.description}}</p>
<p>Please review and approve or reject this submission.</p>
<p><a href="{{.admin_dashboard_url}}">Open the review queue</a></p>{{end}}

{{define "volunteer_hours_approved"}}<h1>Volunteer Hours Approved!</h1>
<p>Hello {{.user_name}},</p>
<p>Great news! Your volunteer hours have been approved.</p>
<ul>
<li>Activity: {{.activity_type}}</li>
<li>Date: {{.activity_date}}</li>
<li>Hours: {{.hours}}</li>
<li>Total Hours: {{.total_hours}}</li>
</ul>
<p><a href="{{.dashboard_url}}">View your volunteer hours dashboard</a></p>
<p>Thank you for your contribution to STEM Spark Academy!</p>{{end}}

{{define "volunteer_hours_rejected"}}<h1>Volunteer Hours Update</h1>
<p>Hello {{.user_name}},</p>
<p>Your volunteer hours submission requires attention.</p>
<ul>
<li>Activity: {{.activity_type}}</li>
<li>Date: {{.activity_date}}</li>
<li>Hours: {{.hours}}</li>
</ul>
<p><strong>Reason for rejection:</strong> {{.rejection_reason}}</p>
<p><a href="{{.dashboard_url}}">Update your submission</a></p>
<p>Please review and resubmit with the requested changes.</p>{{end}}
`))

func renderFallback(name string, data map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := fallbackTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s fallback: %w", name, err)
	}
	return buf.String(), nil
}
