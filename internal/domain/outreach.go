package domain

import (
	"context"
	"time"
)

// Outreach email delivery status. Delivery is fire-and-forget; a failed send
// is recorded but never blocks the caller.
const (
	OutreachStatusDraft  = "draft"
	OutreachStatusSent   = "sent"
	OutreachStatusFailed = "failed"
)

// OutreachEmail is a recruiter-to-applicant message, usually drafted by the
// text-generation boundary and edited before sending.
type OutreachEmail struct {
	ID          int64      `json:"id"`
	RecruiterID string     `json:"recruiter_id"`
	ApplicantID string     `json:"applicant_id"`
	Subject     string     `json:"subject" validate:"required"`
	Body        string     `json:"body" validate:"required"`
	Status      string     `json:"status"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OutreachMailer delivers an outreach message. Delivery failures are
// recorded on the record, never propagated as request failures.
type OutreachMailer interface {
	SendOutreach(to, subject, body string) error
}

type OutreachRepository interface {
	Create(ctx context.Context, email *OutreachEmail) error
	GetByID(ctx context.Context, id int64) (*OutreachEmail, error)
	FetchByRecruiter(ctx context.Context, recruiterID string) ([]OutreachEmail, error)
	Update(ctx context.Context, email *OutreachEmail) error
	Delete(ctx context.Context, id int64) error
}

type OutreachUsecase interface {
	// Draft generates a subject/body via the text-generation boundary and
	// stores the result with status draft.
	Draft(ctx context.Context, recruiterID, applicantID, jobTitle, notes string) (*OutreachEmail, error)
	GetEmail(ctx context.Context, recruiterID string, id int64) (*OutreachEmail, error)
	ListMyEmails(ctx context.Context, recruiterID string) ([]OutreachEmail, error)
	UpdateEmail(ctx context.Context, recruiterID string, email *OutreachEmail) error
	Send(ctx context.Context, recruiterID string, id int64) (*OutreachEmail, error)
	DeleteEmail(ctx context.Context, recruiterID string, id int64) error
}
