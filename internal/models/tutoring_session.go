package models

import "time"

// TutoringSessionCompleted marks a session eligible for volunteer hours.
const TutoringSessionCompleted = "completed"

// TutoringSession is the subset of a tutoring session the volunteer workflow reads.
type TutoringSession struct {
	ID            string     `db:"id" json:"id"`
	InternID      string     `db:"intern_id" json:"intern_id"`
	Subject       string     `db:"subject" json:"subject"`
	Status        string     `db:"status" json:"status"`
	ScheduledTime *time.Time `db:"scheduled_time" json:"scheduled_time,omitempty"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
