package dto

// SubmitVolunteerHoursRequest is the payload an intern sends to log hours.
// ActivityDate uses the YYYY-MM-DD calendar format.
type SubmitVolunteerHoursRequest struct {
	InternID            string  `json:"-" validate:"required"`
	ActivityDate        string  `json:"activity_date" validate:"required"`
	ActivityType        string  `json:"activity_type" validate:"max=100"`
	ActivityDescription string  `json:"activity_description" validate:"max=2000"`
	Description         string  `json:"description" validate:"max=2000"`
	Hours               float64 `json:"hours" validate:"required"`
	ReferenceID         string  `json:"reference_id" validate:"max=64"`
}

// ReviewMetadata is the audit context attached to approve and reject calls.
type ReviewMetadata struct {
	Note      string `json:"note,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// ApproveVolunteerHoursRequest is the admin approval payload.
type ApproveVolunteerHoursRequest struct {
	Note string `json:"note"`
}

// RejectVolunteerHoursRequest is the admin rejection payload.
type RejectVolunteerHoursRequest struct {
	Reason string `json:"rejection_reason"`
	Note   string `json:"note"`
}

// SessionHoursRequest creates hours from a completed tutoring session.
type SessionHoursRequest struct {
	Hours float64 `json:"hours"`
	Note  string  `json:"note"`
}

// ExportFormat enumerates the volunteer log export encodings.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered export ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}
