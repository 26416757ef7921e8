package models

import "time"

// VolunteerHoursStatus captures the lifecycle of a submission.
type VolunteerHoursStatus string

const (
	VolunteerHoursPending  VolunteerHoursStatus = "pending"
	VolunteerHoursApproved VolunteerHoursStatus = "approved"
	VolunteerHoursRejected VolunteerHoursStatus = "rejected"
)

// ActivityTypeTutoring labels entries generated from completed tutoring sessions.
const ActivityTypeTutoring = "Tutoring Session"

// VolunteerHours is one volunteer hours submission.
type VolunteerHours struct {
	ID                  string               `db:"id" json:"id"`
	InternID            string               `db:"intern_id" json:"intern_id"`
	ActivityDate        time.Time            `db:"activity_date" json:"activity_date"`
	ActivityType        string               `db:"activity_type" json:"activity_type"`
	ActivityDescription string               `db:"activity_description" json:"activity_description"`
	Description         *string              `db:"description" json:"description,omitempty"`
	Hours               float64              `db:"hours" json:"hours"`
	Status              VolunteerHoursStatus `db:"status" json:"status"`
	ApprovedBy          *string              `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt          *time.Time           `db:"approved_at" json:"approved_at,omitempty"`
	RejectionReason     *string              `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ReferenceID         *string              `db:"reference_id" json:"reference_id,omitempty"`
	CreatedAt           time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `db:"updated_at" json:"updated_at"`
}

// Submitter summarises the intern who owns a pending entry.
type Submitter struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// PendingVolunteerHours joins a pending entry with its submitter.
type PendingVolunteerHours struct {
	VolunteerHours
	Intern Submitter `json:"intern"`
}

// PendingVolunteerHoursPage is one page of the review queue. Total counts every pending
// entry, not just the page.
type PendingVolunteerHoursPage struct {
	Items  []PendingVolunteerHours `json:"items"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
	Total  int                     `json:"total"`
}

// Admin list page sizes.
const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// VolunteerHoursFilter constrains admin listings.
type VolunteerHoursFilter struct {
	Status []VolunteerHoursStatus
	Limit  int
	Offset int
}

// VolunteerHoursStats summarises one intern's submissions.
type VolunteerHoursStats struct {
	TotalHours           float64 `json:"total_hours"`
	ApprovedHours        float64 `json:"approved_hours"`
	PendingHours         float64 `json:"pending_hours"`
	RejectedHours        float64 `json:"rejected_hours"`
	RecentSubmissions    int     `json:"recent_submissions"`
	AverageHoursPerMonth float64 `json:"average_hours_per_month"`
}

// VolunteerHoursOverview aggregates the admin dashboard counters.
type VolunteerHoursOverview struct {
	PendingEntries     int     `db:"pending_entries" json:"pending_entries"`
	ApprovedEntries    int     `db:"approved_entries" json:"approved_entries"`
	RejectedEntries    int     `db:"rejected_entries" json:"rejected_entries"`
	TotalApprovedHours float64 `db:"total_approved_hours" json:"total_approved_hours"`
}
