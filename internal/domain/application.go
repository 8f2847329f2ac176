package domain

import (
	"time"
)

type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
)

// Application is one tracked job application. Every application belongs
// to exactly one user; repositories scope all lookups by user id.
type Application struct {
	ID       string
	UserID   string
	Company  string
	Position string
	Status   Status
	JobType  JobType

	Location *string
	Salary   *string
	URL      *string

	Description  string
	Requirements string
	Notes        string

	AppliedAt  time.Time
	RemindedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusCounts aggregates applications per status for the dashboard.
type StatusCounts struct {
	Total        int
	Applied      int
	Interviewing int
	Offer        int
	Rejected     int
	Withdrawn    int
}
