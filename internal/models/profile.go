package models

import "time"

// ProfileRole represents the platform roles stored on profiles.
type ProfileRole string

const (
	RoleStudent ProfileRole = "student"
	RoleIntern  ProfileRole = "intern"
	RoleParent  ProfileRole = "parent"
	RoleAdmin   ProfileRole = "admin"
)

// Profile mirrors the platform profile row. The workflow only mutates TotalVolunteerHours.
type Profile struct {
	ID                  string      `db:"id" json:"id"`
	Email               string      `db:"email" json:"email"`
	FullName            string      `db:"full_name" json:"full_name"`
	Role                ProfileRole `db:"role" json:"role"`
	IsSuperAdmin        bool        `db:"is_super_admin" json:"is_super_admin"`
	TotalVolunteerHours float64     `db:"total_volunteer_hours" json:"total_volunteer_hours"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the profile may perform admin actions.
func (p *Profile) IsAdmin() bool {
	return p != nil && (p.Role == RoleAdmin || p.IsSuperAdmin)
}

// AdminCheckResult is the outcome of an admin authorization check.
type AdminCheckResult struct {
	Authorized bool     `json:"authorized"`
	Profile    *Profile `json:"profile,omitempty"`
	Reason     string   `json:"reason,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
