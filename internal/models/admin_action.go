package models

import "time"

// Admin action types recorded in the action log.
const (
	AdminActionApproveHours = "approve_hours"
	AdminActionRejectHours  = "reject_hours"
)

// AdminAction is an entry of the admin actions log, written for allowed and denied attempts.
type AdminAction struct {
	ID           string    `db:"id" json:"id"`
	ActionType   string    `db:"action_type" json:"action_type"`
	PerformedBy  string    `db:"performed_by" json:"performed_by"`
	TargetUserID *string   `db:"target_user_id" json:"target_user_id,omitempty"`
	ResourceID   *string   `db:"resource_id" json:"resource_id,omitempty"`
	Metadata     []byte    `db:"metadata" json:"metadata,omitempty"`
	IsAllowed    bool      `db:"is_allowed" json:"is_allowed"`
	Reason       *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
